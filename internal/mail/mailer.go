// Package mail sends plain-text itinerary summaries after a run.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Zhyangithub/eataway-router/internal/domain"
)

// Mailer emails the run summary to a fixed recipient list over SMTP.
// It implements the generate service's Notifier contract.
type Mailer struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
	Log        zerolog.Logger
}

// Notify sends one message covering the whole roster. Drivers without
// a route are listed with their error so dispatch can follow up.
func (m *Mailer) Notify(ctx context.Context, results domain.RunResults) error {
	if m.Host == "" || len(m.Recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := "Dagens rutter " + results.GeneratedAt.Format("2006-01-02")
	body := buildBody(results)

	var msg strings.Builder
	msg.WriteString("From: " + m.From + "\r\n")
	msg.WriteString("To: " + strings.Join(m.Recipients, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	if err := smtp.SendMail(addr, auth, m.From, m.Recipients, []byte(msg.String())); err != nil {
		return fmt.Errorf("send itinerary mail: %w", err)
	}
	m.Log.Info().Int("recipients", len(m.Recipients)).Msg("itinerary mail sent")
	return nil
}

func buildBody(results domain.RunResults) string {
	drivers := make([]string, 0, len(results.Drivers))
	for d := range results.Drivers {
		drivers = append(drivers, d)
	}
	sort.Strings(drivers)

	var b strings.Builder
	for _, driver := range drivers {
		res := results.Drivers[driver]
		b.WriteString("== " + driver + " ==\n")
		if !res.OK() {
			b.WriteString("Ingen rutt: " + res.Error + "\n\n")
			continue
		}

		fmt.Fprintf(&b, "%d stopp, %d min, %.1f km\n", len(res.Stops), res.Stats.DurationMinutes, res.Stats.DistanceKm)
		for i, s := range res.Stops {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s.Name)
		}
		for i, link := range res.NavLinks {
			fmt.Fprintf(&b, "Segment %d: %s\n", i+1, link)
		}
		if len(res.Unmatched) > 0 {
			b.WriteString("Ej matchade: " + strings.Join(res.Unmatched, ", ") + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
