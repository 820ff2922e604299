package system

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MarciaOrozco/nutrito-backend/config"
	"github.com/MarciaOrozco/nutrito-backend/internal/model"
	"github.com/MarciaOrozco/nutrito-backend/pkg/database"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			fmt.Println("Running migrations.")
			db, err := database.NewFromCentral(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close(db)

			err = db.AutoMigrate(
				&model.User{},
				&model.Especialidad{},
				&model.Modalidad{},
				&model.MetodoPago{},
				&model.ObraSocial{},
				&model.NutricionistaProfile{},
				&model.Educacion{},
				&model.Resena{},
				&model.DisponibilidadRango{},
				&model.PacienteProfile{},
				&model.Vinculacion{},
				&model.Turno{},
				&model.Consulta{},
				&model.ConsultaDocumento{},
				&model.Plan{},
				&model.Notificacion{},
			)
			if err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			// Partial unique index backing the booking conflict check.
			// Cancelled turnos free their slot, so they are excluded.
			err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_turno_slot
				ON turnos (nutricionista_id, fecha, hora)
				WHERE estado <> 'cancelado'`).Error
			if err != nil {
				return fmt.Errorf("failed to create slot index: %w", err)
			}

			fmt.Println("Migrations executed successfully.")
			return nil
		},
	}

	return cmd
}
