package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/bhbank/credit-backend/config"
	"github.com/bhbank/credit-backend/internal/domain/entity"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
	pginfra "github.com/bhbank/credit-backend/internal/infrastructure/postgres"
	"github.com/bhbank/credit-backend/pkg/helpers"
)

// Seeds the admin account and the chatbot QA corpus. Safe to run repeatedly:
// the admin insert is skipped when the CIN exists and corpus entries upsert
// on their question text.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	seedAdmin(ctx, pginfra.NewUserRepository(pool))
	seedCorpus(ctx, pginfra.NewChatRepository(pool))
}

func seedAdmin(ctx context.Context, users *pginfra.UserRepository) {
	hash, err := helpers.HashPassword("admin123")
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}
	admin := &entity.User{
		Email:        "admin@bhbank.tn",
		PasswordHash: hash,
		CIN:          "00000001",
		RIB:          "00000000000000000001",
		Admin:        true,
	}
	err = users.Create(ctx, admin)
	switch {
	case errors.Is(err, repo.ErrDuplicateCIN), errors.Is(err, repo.ErrDuplicateEmail):
		log.Println("admin user already seeded")
	case err != nil:
		log.Fatalf("failed to seed admin: %v", err)
	default:
		log.Printf("admin user created: %s", admin.Email)
	}
}

func seedCorpus(ctx context.Context, chats *pginfra.ChatRepository) {
	corpus := []entity.QAPair{
		{
			Question: "Quels sont les types de crédit disponibles ?",
			Answer:   "Nous proposons trois types de crédit : le crédit consommation (jusqu'à 30 000 DT), le crédit aménagement (jusqu'à 20 000 DT) et le crédit ordinateur (jusqu'à 2 500 DT).",
		},
		{
			Question: "Comment ouvrir un compte ?",
			Answer:   "Pour ouvrir un compte, rendez-vous dans l'agence BH Bank la plus proche avec votre CIN et un justificatif de domicile.",
		},
		{
			Question: "Quels documents dois-je fournir pour une demande de crédit ?",
			Answer:   "Vous devez fournir votre CIN (recto et verso), vos trois derniers relevés bancaires, un justificatif de revenus et un justificatif de résidence.",
		},
		{
			Question: "Comment suivre ma demande de crédit ?",
			Answer:   "Connectez-vous à votre espace client avec votre CIN et votre RIB pour consulter l'état de votre demande.",
		},
		{
			Question: "Quelle est la durée de remboursement d'un crédit ?",
			Answer:   "La durée va de 12 à 36 mois pour les crédits consommation et ordinateur, et de 37 à 84 mois pour le crédit aménagement.",
		},
		{
			Question: "Comment est calculée la mensualité ?",
			Answer:   "La mensualité est calculée selon la formule d'annuité à partir du montant, du taux (TMM plus la marge du produit) et de la durée, plus une assurance mensuelle.",
		},
		{
			Question: "Que faire si ma demande est rejetée ?",
			Answer:   "Le motif du rejet vous est communiqué dans votre espace client. Vous pouvez déposer une nouvelle demande après avoir corrigé le motif indiqué.",
		},
		{
			Question: "Comment déposer une réclamation ?",
			Answer:   "Utilisez le formulaire de contact de notre site : indiquez votre nom, votre email et votre message. Un conseiller vous répondra.",
		},
		{
			Question: "Quand vais-je recevoir mon contrat ?",
			Answer:   "Dès l'approbation de votre demande, le contrat est envoyé en pièce jointe à l'adresse email indiquée dans votre dossier.",
		},
		{
			Question: "Quels sont les horaires d'ouverture des agences ?",
			Answer:   "Nos agences sont ouvertes du lundi au vendredi de 8h à 17h.",
		},
	}

	for i := range corpus {
		if err := chats.AddQAPair(ctx, &corpus[i]); err != nil {
			log.Fatalf("failed to seed corpus entry %q: %v", corpus[i].Question, err)
		}
	}
	log.Printf("seeded %d corpus entries", len(corpus))
}
