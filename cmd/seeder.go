package cmd

import (
	"context"
	"fmt"
	"strings"

	categoryDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/category"
	navigationDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/navigation"
	userDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/navigation"
	navigationPostgres "github.com/frahmantamala/distribution-admin/internal/navigation/postgres"
	"github.com/frahmantamala/distribution-admin/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const demoPassword = "password"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed one demo user per role, the product categories and the default menu overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer sqlxDB.Close()

		db, err := initGorm(sqlxDB, cfg.Env)
		if err != nil {
			return fmt.Errorf("failed to init gorm: %w", err)
		}

		return seed(ctx, db, cfg.Security.BCryptCost, clearData)
	},
}

// demo category names match the product brands used in the sample catalogue
var seedCategories = []struct {
	Name string
	Desc string
}{
	{"semen", "semen dan mortar"},
	{"cat", "cat tembok dan kayu"},
	{"keramik", "keramik lantai dan dinding"},
	{"besi", "besi beton dan baja ringan"},
	{"pipa", "pipa dan perlengkapan air"},
}

// seedOverrides narrow menu entries whose defaults are wider than the demo tenant wants
var seedOverrides = []navigation.RoutePermission{
	{Path: "/reports/project-visits", Roles: []role.Role{role.SalesProject, role.ManagerProject, role.Admin}},
}

func seed(ctx context.Context, db *gorm.DB, bcryptCost int, clear bool) error {
	lg := logger.L()

	if clear {
		if err := db.WithContext(ctx).Where("1 = 1").Delete(&navigationDatamodel.RoutePermission{}).Error; err != nil {
			return fmt.Errorf("failed to clear route permissions: %w", err)
		}
		lg.Info("cleared route permission overrides")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	for _, r := range role.All() {
		username := strings.ReplaceAll(strings.ToLower(r.String()), " ", "")
		u := userDatamodel.User{
			Username:     username,
			Name:         r.String(),
			PasswordHash: string(hash),
			Role:         int(r),
			IsActive:     true,
		}
		res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&u)
		if res.Error != nil {
			return fmt.Errorf("failed to insert user %s: %w", username, res.Error)
		}
		if res.RowsAffected > 0 {
			lg.Info("seeded user", "username", username, "role", int(r))
		}
	}

	for _, c := range seedCategories {
		cat := categoryDatamodel.Category{Name: c.Name, Description: c.Desc, IsActive: true}
		res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&cat)
		if res.Error != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.Name, res.Error)
		}
		if res.RowsAffected > 0 {
			lg.Info("seeded category", "name", c.Name)
		}
	}

	routes := navigationPostgres.NewRoutePermissionRepository(db)
	for _, o := range seedOverrides {
		o.UpdatedBy = "seed"
		if err := routes.Upsert(ctx, o); err != nil {
			return err
		}
		lg.Info("seeded route permission", "path", o.Path, "roles", role.Join(o.Roles))
	}

	lg.Info("seed finished", "demo_password", demoPassword)
	return nil
}
