package notification

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	apperrors "aliasguard/pkg/errors"
)

type Message struct {
	Title       string
	Description string
	Severity    string
	Fields      map[string]string
	Timestamp   time.Time
}

type NotificationClient struct {
	sg        *discordgo.Session
	channelID string
}

// NewNotificationClient opens a Discord session for posting breach
// findings. Token and channel come from configuration; both are
// required.
func NewNotificationClient(token, channelID string) (*NotificationClient, error) {
	if token == "" || channelID == "" {
		return nil, apperrors.ErrDiscordNotConfigured
	}

	sg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	if err := sg.Open(); err != nil {
		return nil, err
	}

	return &NotificationClient{sg: sg, channelID: channelID}, nil
}

func (c *NotificationClient) getSeverityColor(severity string) int {
	switch severity {
	case "critical":
		return 0x8B0000
	case "high":
		return 0xFF0000
	case "medium":
		return 0xFF8C00
	case "low":
		return 0xFFD700
	case "info":
		return 0x00BFFF
	default:
		return 0x808080
	}
}

func (c *NotificationClient) Send(msg Message) error {
	if c.sg == nil {
		return apperrors.ErrDiscordNotConfigured
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Description,
		Color:       c.getSeverityColor(msg.Severity),
		Timestamp:   msg.Timestamp.Format(time.RFC3339),
	}

	if len(msg.Fields) > 0 {
		fields := make([]*discordgo.MessageEmbedField, 0, len(msg.Fields))
		for key, value := range msg.Fields {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   key,
				Value:  value,
				Inline: true,
			})
		}
		embed.Fields = fields
	}

	_, err := c.sg.ChannelMessageSendEmbed(c.channelID, embed)
	return err
}

func (c *NotificationClient) Close() error {
	if c.sg != nil {
		return c.sg.Close()
	}
	return nil
}

// BreachMessage builds the embed for one compromised alias. Severity
// is critical when the deactivation itself failed, high otherwise.
func BreachMessage(email, description string, breachNames []string, deactivateErr error) Message {
	severity := "high"
	outcome := "deactivated"
	if deactivateErr != nil {
		severity = "critical"
		outcome = "deactivation FAILED: " + deactivateErr.Error()
	}

	fields := map[string]string{
		"Alias":    email,
		"Breaches": strings.Join(breachNames, ", "),
		"Outcome":  outcome,
	}
	if description != "" {
		fields["Description"] = description
	}

	return Message{
		Title:       "Alias found in breach data",
		Description: "The alias address appeared in known data breaches and was taken out of service.",
		Severity:    severity,
		Fields:      fields,
		Timestamp:   time.Now(),
	}
}
