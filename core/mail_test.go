package core

import (
	"net/mail"
	"strings"
	"testing"
)

func TestEmailMessage_Render(t *testing.T) {
	type badgeData struct {
		Name         string
		BadgeName    string
		Requirement  string
		RewardTitle  string
		RewardPoints int
	}

	tests := []struct {
		name     string
		msg      EmailMessage
		wantText []string
		wantHTML []string
		wantErr  bool
	}{
		{
			name:     "plain body",
			msg:      EmailMessage{BodyStr: "hello"},
			wantText: []string{"hello"},
		},
		{
			name: "badge earned template",
			msg: EmailMessage{
				TemplateName: "badge_earned",
				TemplateData: badgeData{
					Name: "Amani", BadgeName: "Bookworm", Requirement: "Complete 10 lessons",
					RewardTitle: "Dedicated Learner", RewardPoints: 100,
				},
			},
			wantText: []string{"Hi Amani", `"Bookworm"`, "+100 points", "http://front.test/badges"},
			wantHTML: []string{"<strong>Bookworm</strong>", "Dedicated Learner"},
		},
		{name: "unknown template", msg: EmailMessage{TemplateName: "lol"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.msg
			msg.To = []mail.Address{{Address: "amani@test.cd"}}
			err := msg.Render("http://front.test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Render() error = %v; wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.wantText {
				if !strings.Contains(msg.TextContent, want) {
					t.Errorf("Render() TextContent = %q; want it to contain %q", msg.TextContent, want)
				}
			}
			for _, want := range tt.wantHTML {
				if !strings.Contains(msg.HTMLContent, want) {
					t.Errorf("Render() HTMLContent = %q; want it to contain %q", msg.HTMLContent, want)
				}
			}
		})
	}
}
