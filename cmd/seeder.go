package cmd

import (
	"fmt"
	"log"

	userDatamodel "github.com/frahmantamala/conference-management/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the permission set, an admin role and an admin user for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm handle: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_roles", "role_permissions", "permissions", "roles", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		permissions := []struct {
			Name string
			Desc string
		}{
			{"create_event", "Can create sessions"},
			{"update_event", "Can update sessions"},
			{"delete_event", "Can delete sessions"},
			{"view_event", "Can view sessions"},
			{"manage_users", "Can manage user accounts"},
		}

		permIDs := make(map[string]string, len(permissions))
		for _, p := range permissions {
			var perm userDatamodel.Permission
			err := db.Where("name = ?", p.Name).First(&perm).Error
			if err == gorm.ErrRecordNotFound {
				perm = userDatamodel.Permission{Name: p.Name, Description: p.Desc}
				if err := db.Create(&perm).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Name, err)
				}
				fmt.Println("Seeded permission:", p.Name)
			} else if err != nil {
				log.Fatalf("failed to lookup permission %s: %v", p.Name, err)
			}
			permIDs[p.Name] = perm.ID
		}

		var adminRole userDatamodel.Role
		err = db.Where("name = ?", "admin").First(&adminRole).Error
		if err == gorm.ErrRecordNotFound {
			adminRole = userDatamodel.Role{Name: "admin", Description: "full administrator"}
			if err := db.Create(&adminRole).Error; err != nil {
				log.Fatalf("failed to insert admin role: %v", err)
			}
			fmt.Println("Seeded admin role")
		} else if err != nil {
			log.Fatalf("failed to lookup admin role: %v", err)
		}

		for name, pid := range permIDs {
			var rp userDatamodel.RolePermission
			err := db.Where("role_id = ? AND permission_id = ?", adminRole.ID, pid).First(&rp).Error
			if err == gorm.ErrRecordNotFound {
				rp = userDatamodel.RolePermission{RoleID: adminRole.ID, PermissionID: pid}
				if err := db.Create(&rp).Error; err != nil {
					log.Fatalf("failed to grant permission %s to admin role: %v", name, err)
				}
			} else if err != nil {
				log.Fatalf("failed to lookup role permission %s: %v", name, err)
			}
		}
		fmt.Println("Granted all permissions to admin role")

		adminEmail := "admin@conference.local"
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		var adminUser userDatamodel.User
		err = db.Where("email = ?", adminEmail).First(&adminUser).Error
		if err == gorm.ErrRecordNotFound {
			adminUser = userDatamodel.User{
				Email:        adminEmail,
				PasswordHash: string(hash),
				IsActive:     true,
			}
			if err := db.Create(&adminUser).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		} else if err != nil {
			log.Fatalf("failed to lookup admin user: %v", err)
		}

		var ur userDatamodel.UserRole
		err = db.Where("user_id = ? AND role_id = ?", adminUser.ID, adminRole.ID).First(&ur).Error
		if err == gorm.ErrRecordNotFound {
			ur = userDatamodel.UserRole{UserID: adminUser.ID, RoleID: adminRole.ID}
			if err := db.Create(&ur).Error; err != nil {
				log.Fatalf("failed to assign admin role to admin user: %v", err)
			}
		} else if err != nil {
			log.Fatalf("failed to lookup user role: %v", err)
		}

		fmt.Println("Assigned admin role to admin user:", adminEmail)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
