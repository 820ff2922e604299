package system

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/config"
	"github.com/MarciaOrozco/nutrito-backend/internal/model"
	"github.com/MarciaOrozco/nutrito-backend/pkg/database"
)

var (
	seedModalidades = []string{"Presencial", "Virtual"}

	seedMetodosPago = []string{"Efectivo", "Transferencia", "Tarjeta de crédito", "Obra social"}

	seedObrasSociales = []string{"OSDE", "Swiss Medical", "Galeno", "IOMA", "PAMI"}

	seedEspecialidades = []string{
		"Nutrición clínica",
		"Nutrición deportiva",
		"Diabetes",
		"Obesidad y sobrepeso",
		"Nutrición pediátrica",
		"Alimentación vegetariana y vegana",
		"Trastornos de la conducta alimentaria",
	}
)

func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed catalog tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			db, err := database.NewFromCentral(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close(db)

			fmt.Println("Seeding catalogs.")
			if err := seedCatalogs(db); err != nil {
				return fmt.Errorf("failed to seed catalogs: %w", err)
			}
			fmt.Println("Catalogs seeded successfully.")
			return nil
		},
	}

	return cmd
}

// seedCatalogs is idempotent, rows are matched by nombre.
func seedCatalogs(db *gorm.DB) error {
	for _, nombre := range seedModalidades {
		row := model.Modalidad{Nombre: nombre}
		if err := db.Where("nombre = ?", nombre).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	for _, nombre := range seedMetodosPago {
		row := model.MetodoPago{Nombre: nombre}
		if err := db.Where("nombre = ?", nombre).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	for _, nombre := range seedObrasSociales {
		row := model.ObraSocial{Nombre: nombre}
		if err := db.Where("nombre = ?", nombre).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	for _, nombre := range seedEspecialidades {
		row := model.Especialidad{Nombre: nombre}
		if err := db.Where("nombre = ?", nombre).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
