package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sesp-cea/reajuste-service/internal/config"
	"github.com/sesp-cea/reajuste-service/internal/models"
	"github.com/sesp-cea/reajuste-service/internal/utils"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendEligibilityNotice notifies the engineering department that a
// contract has completed the legal interstice and may be adjusted.
func (s *Sender) SendEligibilityNotice(to string, contract *models.Contract, elapsedDays int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Contrato %s elegível para reajuste", contract.Number)

	body := fmt.Sprintf(
		"O contrato %s (%s) completou o interstício legal de 365 dias.\n\n"+
			"Data base do orçamento: %s\n"+
			"Dias decorridos: %d\n"+
			"Valor inicial: %s\n\n"+
			"O cálculo do reajuste pode ser realizado no sistema.\n",
		contract.Number, contract.Company,
		utils.FormatDateBR(contract.BudgetBaseDate),
		elapsedDays,
		utils.FormatBRL(contract.InitialValue),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
