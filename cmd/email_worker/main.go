package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/config"
	"github.com/bhbank/credit-backend/internal/domain/entity"
	"github.com/bhbank/credit-backend/internal/domain/pricing"
	pginfra "github.com/bhbank/credit-backend/internal/infrastructure/postgres"
	"github.com/bhbank/credit-backend/pkg/contract"
	"github.com/bhbank/credit-backend/pkg/helpers"
	"github.com/bhbank/credit-backend/pkg/mailer"
	tpl "github.com/bhbank/credit-backend/pkg/mailer/templates"
)

// The worker consumes ApprovalEmailJob messages, renders the contract PDF and
// the HTML body, sends via Mailgun and marks the application's email_sent
// flag. A transport failure is retried once through a nack-requeue; a message
// that already carries the redelivered flag is dropped with an error log so a
// broken recipient cannot wedge the queue.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		log.Fatal("Mailgun not configured")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	credits := pginfra.NewCreditRepository(pool)

	queue, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQApprovalQueue)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer queue.Close()

	deliveries, err := queue.Consume("email-worker")
	if err != nil {
		log.Fatalf("failed to start consumer: %v", err)
	}

	mail := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailTimeout)

	logger.WithField("queue", cfg.RabbitMQApprovalQueue).Info("email worker consuming")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-stop:
			logger.Info("email worker stopping")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Error("delivery channel closed")
				return
			}
			handleDelivery(ctx, logger, credits, mail, d)
		}
	}
}

func handleDelivery(ctx context.Context, logger *logrus.Logger, credits *pginfra.CreditRepository, mail *mailer.Mailgun, d amqp.Delivery) {
	var job mailer.ApprovalEmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.WithError(err).Error("malformed approval email job, dropping")
		_ = d.Nack(false, false)
		return
	}
	entry := logger.WithField("application_id", job.ApplicationID)

	messageID, err := sendApproval(ctx, mail, job)
	if err != nil {
		var te *mailer.TransportError
		if errors.As(err, &te) && !d.Redelivered {
			entry.WithError(err).Warn("transport error, requeueing once")
			_ = d.Nack(false, true)
			return
		}
		entry.WithError(err).Error("approval email failed, dropping")
		_ = d.Nack(false, false)
		return
	}

	if err := credits.MarkEmailSent(ctx, job.ApplicationID); err != nil {
		// The email went out; a marking failure must not resend it.
		entry.WithError(err).Error("failed to mark email_sent")
	}
	entry.WithField("message_id", messageID).Info("approval email sent")
	_ = d.Ack(false)
}

func sendApproval(ctx context.Context, mail *mailer.Mailgun, job mailer.ApprovalEmailJob) (string, error) {
	creditType := entity.CreditType(job.CreditType)

	pdf, err := contract.Render(contract.Data{
		RecipientName:  job.RecipientName,
		CreditType:     creditType,
		CreditAmount:   job.CreditAmount,
		Duration:       job.Duration,
		MonthlyPayment: job.MonthlyPayment,
		IssueDate:      time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	html, err := tpl.RenderApproval(tpl.ApprovalData{
		RecipientName:  job.RecipientName,
		CreditType:     pricing.DisplayName(creditType),
		CreditAmount:   job.CreditAmount,
		Duration:       job.Duration,
		MonthlyPayment: job.MonthlyPayment,
	})
	if err != nil {
		return "", err
	}

	text := "Votre demande de crédit a été approuvée. Veuillez consulter le contrat en pièce jointe."
	return mail.Send(ctx, job.RecipientEmail, tpl.ApprovalSubject, text, html,
		mailer.Attachment{Filename: "contrat-credit.pdf", Content: pdf})
}
