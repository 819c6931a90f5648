// Package jobs holds the scheduled background work. The only job is a
// daily read-only scan that surfaces contracts whose legal interstice
// has elapsed; it never writes to the ledger.
package jobs

import (
	"time"

	"github.com/sesp-cea/reajuste-service/internal/calc"
	"github.com/sesp-cea/reajuste-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Notifier sends an eligibility notice for one contract. Nil-able:
// without SMTP configuration the scan only logs.
type Notifier interface {
	SendEligibilityNotice(to string, contract *models.Contract, elapsedDays int) error
}

// ContractLister supplies the contracts to scan.
type ContractLister interface {
	ListContracts() ([]models.Contract, error)
}

// EligibilityScanner is a cron job that reports contracts eligible for
// adjustment.
type EligibilityScanner struct {
	contracts   ContractLister
	notifier    Notifier
	notifyEmail string
	log         *logrus.Logger
}

// NewEligibilityScanner creates the daily scan job. notifier may be
// nil when no SMTP is configured.
func NewEligibilityScanner(contracts ContractLister, notifier Notifier, notifyEmail string, log *logrus.Logger) *EligibilityScanner {
	return &EligibilityScanner{
		contracts:   contracts,
		notifier:    notifier,
		notifyEmail: notifyEmail,
		log:         log,
	}
}

// Run implements cron.Job.
func (s *EligibilityScanner) Run() {
	contracts, err := s.contracts.ListContracts()
	if err != nil {
		s.log.Errorf("Eligibility scan failed to list contracts: %v", err)
		return
	}

	now := time.Now()
	eligible := 0
	for i := range contracts {
		c := &contracts[i]
		ok, days := calc.ValidateInterstice(c.BudgetBaseDate, now)
		if !ok {
			continue
		}
		eligible++
		s.log.Infof("Contract %s eligible for adjustment: %d days since budget base date", c.Number, days)

		if s.notifier != nil && s.notifyEmail != "" {
			if err := s.notifier.SendEligibilityNotice(s.notifyEmail, c, days); err != nil {
				s.log.Errorf("Failed to notify eligibility of contract %s: %v", c.Number, err)
			}
		}
	}
	s.log.Infof("Eligibility scan finished: %d/%d contracts eligible", eligible, len(contracts))
}
