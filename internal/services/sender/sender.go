// Package services отправляет письма по сообщениям из очередей:
// квитанции о пожертвованиях и напоминания владельцам кампаний.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/community-kitchen/internal/lib/sl"
	"github.com/magabrotheeeer/community-kitchen/internal/lib/smtp"
	"github.com/magabrotheeeer/community-kitchen/internal/models"
)

// SenderService формирует и отправляет письма через SMTP.
type SenderService struct {
	transport smtp.TransportInterface
	baseURL   string
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
// baseURL используется для ссылок на страницы кампаний в письмах.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface, baseURL string) *SenderService {
	return &SenderService{
		transport: transport,
		baseURL:   strings.TrimRight(baseURL, "/"),
		log:       log,
	}
}

// SendDonationReceipt отправляет квитанцию жертвователю.
func (s *SenderService) SendDonationReceipt(body []byte) error {
	var message models.DonationReceipt
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := fmt.Sprintf("Your donation receipt #%d", message.DonationID)
	bodyText := fmt.Sprintf(`Hi %s,

Thank you for supporting "%s".

Donation:        $%.2f
Processing fee:  $%.2f
Total charged:   $%.2f
Date:            %s

Campaign page: %s

CommunityKitchen`,
		message.FirstName, message.CampaignTitle,
		message.Amount, message.Fee, message.Total,
		message.CreatedAt.Format("January 2, 2006"),
		s.campaignURL(message.CampaignID))

	return s.sendEmail([]string{message.Email}, subject, bodyText)
}

// SendCampaignReminder напоминает владельцу, что кампания заканчивается завтра.
func (s *SenderService) SendCampaignReminder(body []byte) error {
	var message models.CampaignReminder
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := fmt.Sprintf("Your campaign \"%s\" ends tomorrow", message.Title)
	bodyText := fmt.Sprintf(`Hi %s,

Your campaign "%s" ends on %s.
Raised so far: $%.2f of $%.2f.

Post an update to thank your donors: %s

CommunityKitchen`,
		message.Username, message.Title, message.EndDate.Format("January 2, 2006"),
		message.Raised, message.Goal, s.campaignURL(message.CampaignID))

	return s.sendEmail([]string{message.Email}, subject, bodyText)
}

func (s *SenderService) campaignURL(id int) string {
	return fmt.Sprintf("%s/campaigns/%d", s.baseURL, id)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err = client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err = client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
