package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/opjlab/opj-backend/internal/config"
	"github.com/opjlab/opj-backend/internal/database"
	"github.com/opjlab/opj-backend/internal/logger"
	"github.com/opjlab/opj-backend/internal/model"
	"github.com/opjlab/opj-backend/internal/repository"
	"github.com/opjlab/opj-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

type seedDocument struct {
	title     string
	reference string
	sections  []model.SectionRequest
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	adminRepo := repository.NewAdminRepository(pool)
	docRepo := repository.NewDocumentRepository(pool)
	docService := service.NewDocumentService(docRepo, rdb, log)

	fmt.Println("=== Seeding Sample Documents ===")

	// Seed content needs an author. Reuse the first admin or create one.
	var adminID int
	err = pool.QueryRow(ctx, "SELECT id FROM admins ORDER BY id LIMIT 1").Scan(&adminID)
	if err != nil {
		if err == pgx.ErrNoRows {
			fmt.Println("No admin found. Creating seed admin...")
			hash, err := bcrypt.GenerateFromPassword([]byte("opj-seed-admin"), cfg.BcryptCost)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to hash seed password")
			}
			admin := &model.Admin{
				Email:        "seed@opjlab.fr",
				Name:         "Seed Admin",
				PasswordHash: string(hash),
			}
			if err := adminRepo.Create(ctx, admin); err != nil {
				log.Fatal().Err(err).Msg("Failed to create seed admin")
			}
			adminID = admin.ID
			fmt.Printf("Created seed admin with ID: %d\n", adminID)
		} else {
			log.Fatal().Err(err).Msg("Failed to look up admin")
		}
	} else {
		fmt.Printf("Found existing admin with ID: %d\n", adminID)
	}

	successCount := 0
	for _, seed := range sampleDocuments() {
		doc := &model.Document{
			Title:     seed.title,
			Reference: seed.reference,
			AuthorID:  adminID,
		}
		if err := docService.Create(ctx, doc); err != nil {
			fmt.Printf("Error creating document %q: %v\n", seed.title, err)
			continue
		}
		if err := docService.ReplaceContent(ctx, doc.ID, adminID, &model.ReplaceContentRequest{Sections: seed.sections}); err != nil {
			fmt.Printf("Error filling document %q: %v\n", seed.title, err)
			continue
		}
		if err := docService.Publish(ctx, doc.ID, adminID); err != nil {
			fmt.Printf("Error publishing document %q: %v\n", seed.title, err)
			continue
		}
		successCount++
		fmt.Printf("Published %q (%s)\n", seed.title, doc.ID)
	}

	fmt.Printf("\nSeed completed! Successfully published %d documents.\n", successCount)
}

func sampleDocuments() []seedDocument {
	gav := "Art. 63 CPP"
	droits := "Art. 63-1 CPP"
	auditionLibre := "Art. 61-1 CPP"

	return []seedDocument{
		{
			title:     "PV de placement en garde à vue",
			reference: "PV-GAV-01",
			sections: []model.SectionRequest{
				{
					Kind: "en_tete", Title: "En-tête", Position: 0,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "Commissariat de police de Lyon, le quinze janvier deux mille vingt-cinq à neuf heures trente."},
						{Position: 1, Template: "Nous, officier de police judiciaire en fonction au commissariat de Lyon, agissant en enquête de flagrance."},
					},
				},
				{
					Kind: "cadre_legal", Title: "Cadre légal", Position: 1,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "Vu les articles [[62-2]], [[63]] et [[63-1]] du code de procédure pénale,", Tags: []string{"gav"}, LegalFramework: &gav},
						{Position: 1, Template: "Vu l'article [[803-6]] du code de procédure pénale relatif au document énonçant les droits,", LegalFramework: &droits},
					},
				},
				{
					Kind: "identite", Title: "Identité", Position: 2,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "La personne déclare se nommer [[Martin]] [[Paul]], né le [[12 mars 1990]] à [[Lyon]], demeurant [[8 rue de la République]]."},
					},
				},
				{
					Kind: "deroulement", Title: "Déroulement", Position: 3,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "Constatons que la personne est [[placée en garde à vue]] ce jour à [[neuf heures quarante-cinq]], mesure prise sous le contrôle du [[procureur de la République]]."},
						{Position: 1, Template: "Informons [[sans délai]] le procureur de la République de cette mesure par [[tout moyen]]."},
					},
				},
				{
					Kind: "notification_droits", Title: "Notification des droits", Position: 4,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "Notifions à la personne son droit de [[faire prévenir un proche]] et son employeur, son droit d'être examinée par un [[médecin]], et son droit d'être assistée par un [[avocat]].", Tags: []string{"droits"}, LegalFramework: &droits},
						{Position: 1, Template: "L'informons de son droit, lors des auditions, de faire des déclarations, de répondre aux questions ou de [[se taire]].", LegalFramework: &droits},
					},
				},
				{
					Kind: "cloture", Title: "Clôture", Position: 5,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "Dont procès-verbal clos le quinze janvier deux mille vingt-cinq à dix heures, pour être transmis à monsieur le procureur de la République."},
					},
				},
			},
		},
		{
			title:     "PV d'audition libre",
			reference: "PV-AL-01",
			sections: []model.SectionRequest{
				{
					Kind: "en_tete", Title: "En-tête", Position: 0,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "Brigade de gendarmerie de Villeurbanne, le trois février deux mille vingt-cinq à quatorze heures."},
					},
				},
				{
					Kind: "cadre_legal", Title: "Cadre légal", Position: 1,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "Vu l'article [[61-1]] du code de procédure pénale relatif à l'audition de la personne soupçonnée entendue librement,", Tags: []string{"audition_libre"}, LegalFramework: &auditionLibre},
					},
				},
				{
					Kind: "identite", Title: "Identité", Position: 2,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "Entendons madame [[Durand]] [[Claire]], née le [[2 juillet 1985]] à [[Grenoble]], profession [[infirmière]]."},
					},
				},
				{
					Kind: "deroulement", Title: "Déroulement", Position: 3,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "L'informons qu'elle est entendue [[librement]] et qu'elle peut [[quitter à tout moment]] les locaux où elle est entendue."},
						{Position: 1, Template: "L'informons de la [[qualification]], de la [[date]] et du [[lieu]] présumés de l'infraction qu'elle est soupçonnée d'avoir commise."},
					},
				},
				{
					Kind: "notification_droits", Title: "Notification des droits", Position: 4,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "L'informons de son droit d'être assistée par un [[interprète]], de son droit de faire des déclarations, de répondre aux questions ou de [[se taire]], et de son droit d'être assistée par un [[avocat]].", Tags: []string{"droits"}, LegalFramework: &auditionLibre},
					},
				},
				{
					Kind: "cloture", Title: "Clôture", Position: 5,
					Blocks: []model.BlockRequest{
						{Position: 0, Template: "Lecture faite par elle-même de ses déclarations, la personne entendue persiste et signe avec nous le présent procès-verbal."},
					},
				},
			},
		},
	}
}
