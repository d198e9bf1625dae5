package models

import (
	"fmt"
	"time"
)

// SeedWorkspace returns the built-in starter workspace. It is used on
// first start and whenever persisted state fails to load.
func SeedWorkspace() Workspace {
	alex := Member{ID: "u1", Name: "Alex Rivera", Avatar: "https://picsum.photos/seed/alex/100/100", Role: "Fullstack Developer", Presence: PresenceOnline}
	sarah := Member{ID: "u2", Name: "Sarah Chen", Avatar: "https://picsum.photos/seed/sarah/100/100", Role: "UI/UX Lead", Presence: PresenceOnline}
	mike := Member{ID: "u3", Name: "Mike Johnson", Avatar: "https://picsum.photos/seed/mike/100/100", Role: "Backend Engineer", Presence: PresenceOnline}
	emily := Member{ID: "u4", Name: "Emily White", Avatar: "https://picsum.photos/seed/emily/100/100", Role: "Product Manager", Presence: PresenceOnline}
	david := Member{ID: "u5", Name: "David Kim", Avatar: "https://picsum.photos/seed/david/100/100", Role: "DevOps", Presence: PresenceOnline}
	bot := Member{ID: AssistantID, Name: AssistantName, Role: "AI Assistant", Presence: PresenceOnline}

	all := []Member{alex, sarah, mike, emily, david}

	roster := func(admin string, members ...Member) []RoomMember {
		out := make([]RoomMember, 0, len(members))
		for _, m := range members {
			role := RoomRoleMember
			if m.ID == admin {
				role = RoomRoleAdmin
			}
			out = append(out, RoomMember{Member: m, RoomRole: role})
		}
		return out
	}

	now := time.Now()
	seq := 0
	msg := func(prefix string, sender Member, content string, minutesAgo int) Message {
		seq++
		role := RoleUser
		if sender.ID == AssistantID {
			role = RoleAssistant
		}
		return Message{
			ID:         fmt.Sprintf("%s-%d", prefix, seq),
			SenderID:   sender.ID,
			SenderName: sender.Name,
			Content:    content,
			Timestamp:  now.Add(-time.Duration(minutesAgo) * time.Minute),
			Role:       role,
		}
	}

	return Workspace{
		Members: all,
		Rooms: []Room{
			{
				ID:          "room-main",
				Name:        "Main",
				Description: "The general workspace for all company-wide updates and collaboration.",
				AdminID:     alex.ID,
				Members:     roster(alex.ID, alex, sarah, mike, emily, david),
				Messages: []Message{
					msg("m", emily, "Welcome everyone to the refreshed corporate workspace!", 180),
					msg("m", alex, "Alex here. The departmental sync is looking great.", 175),
					msg("m", bot, "System: Corporate workspace initialized. Monitoring #Main for high-level tasks.", 168),
					msg("m", mike, "Anyone seen the link for the Q4 strategy meeting?", 160),
					msg("m", bot, "Announcement: All-hands meeting starts in 45 minutes.", 120),
					msg("m", alex, "Can we talk about the hiring budget for Engineering?", 90),
					msg("m", david, "The global dashboard is showing 100% uptime currently.", 60),
				},
				Tasks: []Task{
					{ID: "t-m-1", Title: "Publish Quarterly Roadmap", Status: TaskCompleted, Assignee: "Emily White"},
					{ID: "t-m-2", Title: "Discuss Engineering Budget", Status: TaskPending, Assignee: "Emily White"},
				},
				Resources: []Resource{
					{ID: "r-m-1", Title: "Company Handbook 2025", URL: "#", Category: "General"},
				},
				PinnedMessageIDs: []string{"m-1", "m-5"},
			},
			{
				ID:          "room-eng",
				Name:        "Engineering",
				Description: "Core technical coordination, PR reviews, and architecture planning.",
				AdminID:     alex.ID,
				Members:     roster(alex.ID, alex, mike, david),
				Messages: []Message{
					msg("e", alex, "Starting the daily standup. Focus is the API layer.", 120),
					msg("e", mike, "Mike here. GraphQL migration is at 85%.", 115),
					msg("e", bot, "Alert: Memory usage in staging-west peaked at 92% during the load test.", 108),
					msg("e", alex, "I found the culprit in the JWT validation loop.", 100),
					msg("e", david, "I'm updating the Terraform scripts for the RDS upgrade.", 90),
					msg("e", mike, "Deployment successful. Latency is back to normal.", 5),
				},
				Tasks: []Task{
					{ID: "t-e-1", Title: "Fix JWT Memory Leak", Status: TaskCompleted, Assignee: "Alex Rivera"},
					{ID: "t-e-2", Title: "Database Index Optimization", Status: TaskInProgress, Assignee: "Alex Rivera"},
				},
				PinnedMessageIDs: []string{"e-8"},
			},
			{
				ID:          "room-design",
				Name:        "Design",
				Description: "Visual identity, design tokens, and prototype reviews.",
				AdminID:     sarah.ID,
				Members:     roster(sarah.ID, sarah, alex, emily),
				Messages: []Message{
					msg("d", sarah, "Sarah here. The new component library tokens are ready.", 140),
					msg("d", emily, "The mobile nav icons are a bit too small on Android.", 130),
					msg("d", bot, "Audit: Component Library v2.1 meets all AAA accessibility standards.", 68),
					msg("d", sarah, "I'll create some custom illustrations for the empty states tomorrow.", 30),
				},
				Tasks: []Task{
					{ID: "t-d-1", Title: "Update Component Library Tokens", Status: TaskCompleted, Assignee: "Alex Rivera"},
					{ID: "t-d-2", Title: "Design Empty State Icons", Status: TaskPending, Assignee: "Sarah Chen"},
				},
				Resources: []Resource{
					{ID: "r-d-1", Title: "Figma Component Tokens", URL: "#", Category: "Design"},
				},
				PinnedMessageIDs: []string{"d-14"},
			},
			{
				ID:          "room-marketing",
				Name:        "Marketing",
				Description: "Growth tracking, campaign metrics, and brand outreach.",
				AdminID:     emily.ID,
				Members:     roster(emily.ID, emily, sarah),
				Messages: []Message{
					msg("mk", emily, "Emily here. Q3 campaign post-mortem is starting.", 150),
					msg("mk", sarah, "The click-through rate on the LinkedIn ads was 3.4%.", 140),
					msg("mk", bot, "Analysis: Variant B with the indigo CTA performed 15% better than Variant A.", 128),
					msg("mk", emily, "We also need to update the SEO tags on the landing page.", 50),
					msg("mk", sarah, "Alex mentioned he'd handle the technical SEO tomorrow.", 40),
				},
				Tasks: []Task{
					{ID: "t-mk-1", Title: "Influencer Outreach Kit", Status: TaskInProgress, Assignee: "Sarah Chen"},
					{ID: "t-mk-2", Title: "Social Media Blast", Status: TaskCompleted, Assignee: "Emily White"},
				},
				PinnedMessageIDs: []string{"mk-18"},
			},
			{
				ID:          "room-hr",
				Name:        "HR",
				Description: "Culture initiatives, employee relations, and policy management.",
				AdminID:     david.ID,
				Members:     roster(david.ID, david, emily),
				Messages: []Message{
					msg("h", david, "David here. The new hybrid policy is officially active.", 120),
					msg("h", emily, "Are there any changes to the core office hours?", 110),
					msg("h", bot, "Note: Hybrid policy allows for 3 days remote and 2 days in-office.", 98),
					msg("h", david, "We have two new junior devs starting on Monday.", 90),
				},
				Tasks: []Task{
					{ID: "t-h-1", Title: "Onboard New Developers", Status: TaskInProgress, Assignee: "David Kim"},
					{ID: "t-h-2", Title: "Team Building Poll", Status: TaskPending, Assignee: "David Kim"},
				},
				Resources: []Resource{
					{ID: "r-h-1", Title: "Employee Benefits 2025", URL: "#", Category: "Official"},
				},
				PinnedMessageIDs: []string{"h-23"},
			},
		},
	}
}
