package postgres_test

import (
	"context"
	"testing"

	authPostgres "github.com/frahmantamala/conference-management/internal/auth/postgres"
	userDatamodel "github.com/frahmantamala/conference-management/internal/core/datamodel/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

var _ = Describe("Auth Repository", func() {
	var (
		db   *gorm.DB
		repo *authPostgres.Repository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		// SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&userDatamodel.Role{},
			&userDatamodel.Permission{},
			&userDatamodel.UserRole{},
			&userDatamodel.RolePermission{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = authPostgres.NewRepository(db)
		ctx = context.Background()
	})

	seedUser := func(email string) *userDatamodel.User {
		u := &userDatamodel.User{Email: email, PasswordHash: "stored-hash", IsActive: true}
		Expect(db.Create(u).Error).NotTo(HaveOccurred())
		return u
	}

	grantPermission := func(u *userDatamodel.User, permName string) {
		role := &userDatamodel.Role{Name: permName + "-role"}
		Expect(db.Create(role).Error).NotTo(HaveOccurred())

		perm := &userDatamodel.Permission{Name: permName}
		Expect(db.Create(perm).Error).NotTo(HaveOccurred())

		Expect(db.Create(&userDatamodel.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&userDatamodel.UserRole{UserID: u.ID, RoleID: role.ID}).Error).NotTo(HaveOccurred())
	}

	Describe("GetByEmail", func() {
		It("should return the user and its stored password hash", func() {
			seedUser("alice@example.com")

			found, hash, err := repo.GetByEmail("alice@example.com")

			Expect(err).NotTo(HaveOccurred())
			Expect(found.Email).To(Equal("alice@example.com"))
			Expect(hash).To(Equal("stored-hash"))
		})

		It("should fail for an unknown email", func() {
			_, _, err := repo.GetByEmail("nobody@example.com")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("HasPermission", func() {
		It("should grant a permission reachable through a role", func() {
			u := seedUser("alice@example.com")
			grantPermission(u, "manage_users")

			ok, err := repo.HasPermission(ctx, u.ID, "manage_users")

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("should deny a permission the user's roles do not hold", func() {
			u := seedUser("alice@example.com")
			grantPermission(u, "view_event")

			ok, err := repo.HasPermission(ctx, u.ID, "manage_users")

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should deny everything for a user with no roles", func() {
			u := seedUser("alice@example.com")

			ok, err := repo.HasPermission(ctx, u.ID, "view_event")

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should deny a permission after the role grant is soft-deleted", func() {
			u := seedUser("alice@example.com")
			grantPermission(u, "manage_users")

			Expect(db.Where("user_id = ?", u.ID).Delete(&userDatamodel.UserRole{}).Error).NotTo(HaveOccurred())

			ok, err := repo.HasPermission(ctx, u.ID, "manage_users")

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})
})
