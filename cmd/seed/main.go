// Package main provides a CLI tool for seeding the database with
// sample data: a few schools, suppliers, and uniforms with stock.
package main

import (
	"context"
	"fmt"
	"os"

	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
	"uniformdesk/internal/domain/catalogs/school"
	"uniformdesk/internal/domain/catalogs/supplier"
	"uniformdesk/internal/domain/catalogs/uniform"
	"uniformdesk/internal/infrastructure/storage/postgres"
	"uniformdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"uniformdesk/pkg/logger"
	"uniformdesk/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	schoolService := school.NewService(catalog_repo.NewSchoolRepo(txManager), txManager)
	supplierService := supplier.NewService(catalog_repo.NewSupplierRepo(txManager))
	uniformService := uniform.NewService(
		catalog_repo.NewUniformRepo(txManager),
		numerator.New(pool),
		txManager,
	)

	schools := []*school.School{
		school.NewSchool("Greenfield Primary", "12 Oak Lane", "020-555-0101", "A. Mensah"),
		school.NewSchool("Riverside High", "4 Bridge Road", "020-555-0102", "J. Okafor"),
	}
	for _, s := range schools {
		if err := schoolService.Create(ctx, s); err != nil {
			log.Fatalw("failed to seed school", "name", s.Name, "error", err)
		}
	}
	log.Infow("seeded schools", "count", len(schools))

	suppliers := []*supplier.Supplier{
		supplier.NewSupplier("Crest Garments", "orders@crestgarments.example", "020-555-0201", 7),
		supplier.NewSupplier("Apex Textiles", "sales@apextextiles.example", "020-555-0202", 14),
	}
	for _, s := range suppliers {
		if err := supplierService.Create(ctx, s); err != nil {
			log.Fatalw("failed to seed supplier", "name", s.Name, "error", err)
		}
	}
	log.Infow("seeded suppliers", "count", len(suppliers))

	type skuSpec struct {
		school    id.ID
		supplier  id.ID
		name      string
		size      string
		price     string
		cost      string
		stock     int
		threshold int
	}
	skus := []skuSpec{
		{schools[0].ID, suppliers[0].ID, "Polo Shirt", "S", "12.50", "7.00", 40, 10},
		{schools[0].ID, suppliers[0].ID, "Polo Shirt", "M", "12.50", "7.00", 35, 10},
		{schools[0].ID, suppliers[1].ID, "Pinafore", "M", "18.00", "11.50", 20, 5},
		{schools[1].ID, suppliers[0].ID, "Blazer", "L", "45.00", "28.00", 15, 5},
		{schools[1].ID, suppliers[1].ID, "PE Shorts", "M", "8.00", "4.20", 50, 15},
	}
	for _, spec := range skus {
		u := uniform.NewUniform(spec.school, spec.name, spec.size,
			types.MustMoney(spec.price), types.MustMoney(spec.cost))
		supplierID := spec.supplier
		u.SupplierID = &supplierID
		u.Stock = spec.stock
		u.LowStockThreshold = spec.threshold

		if err := uniformService.Create(ctx, u); err != nil {
			log.Fatalw("failed to seed uniform", "name", spec.name, "size", spec.size, "error", err)
		}
	}
	log.Infow("seeded uniforms", "count", len(skus))

	log.Info("seeding completed successfully")
}
