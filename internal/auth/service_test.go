package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock user repository for testing
type mockUserRepository struct {
	usersByEmail  map[string]*User
	hashesByEmail map[string]string
	usersByID     map[string]*User
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	alice := &User{ID: "11111111-1111-1111-1111-111111111111", Email: "alice@example.com", IsActive: true}
	admin := &User{ID: "22222222-2222-2222-2222-222222222222", Email: "admin@example.com", IsActive: true}

	return &mockUserRepository{
		usersByEmail: map[string]*User{
			alice.Email: alice,
			admin.Email: admin,
		},
		hashesByEmail: map[string]string{
			alice.Email: string(hashedPassword),
			admin.Email: string(hashedPassword),
		},
		usersByID: map[string]*User{
			alice.ID: alice,
			admin.ID: admin,
		},
	}
}

func (m *mockUserRepository) GetByEmail(email string) (*User, string, error) {
	if m.returnError {
		return nil, "", m.errorToReturn
	}
	if user, exists := m.usersByEmail[email]; exists {
		return user, m.hashesByEmail[email], nil
	}
	return nil, "", ErrUserNotFound
}

func (m *mockUserRepository) GetUserByID(id string) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if user, exists := m.usersByID[id]; exists {
		return user, nil
	}
	return nil, ErrUserNotFound
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service   *Service
		mockRepo  *mockUserRepository
		tokenGen  *JWTTokenGenerator
		secret    string        = "test-secret"
		accessTTL time.Duration = 30 * time.Minute
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator(secret, accessTTL)
		service = NewService(mockRepo, tokenGen, bcrypt.DefaultCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return an access token", func() {
				dto := LoginDTO{
					Email:    "alice@example.com",
					Password: "correct_password",
				}

				resp, err := service.Authenticate(dto)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(resp.AccessToken).ToNot(gomega.BeEmpty())
			})

			ginkgo.It("should issue a token carrying the user id and expiry", func() {
				dto := LoginDTO{
					Email:    "alice@example.com",
					Password: "correct_password",
				}

				before := time.Now()
				resp, err := service.Authenticate(dto)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.ValidateToken(resp.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("11111111-1111-1111-1111-111111111111"))
				gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", before.Add(accessTTL), 5*time.Second))
			})
		})

		ginkgo.Context("when the password is wrong", func() {
			ginkgo.It("should return invalid credentials", func() {
				dto := LoginDTO{
					Email:    "alice@example.com",
					Password: "wrong_password",
				}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the user does not exist", func() {
			ginkgo.It("should return invalid credentials", func() {
				dto := LoginDTO{
					Email:    "nobody@example.com",
					Password: "correct_password",
				}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the payload is invalid", func() {
			ginkgo.It("should return a validation error for a missing email", func() {
				dto := LoginDTO{Password: "correct_password"}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err).ToNot(gomega.Equal(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the repository fails", func() {
			ginkgo.It("should return invalid credentials", func() {
				mockRepo.returnError = true
				mockRepo.errorToReturn = errors.New("db down")

				_, err := service.Authenticate(LoginDTO{
					Email:    "alice@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should accept a token it issued", func() {
			token, err := tokenGen.GenerateAccessToken("user-1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("user-1"))
		})

		ginkgo.It("should reject an expired token", func() {
			expiredGen := NewJWTTokenGenerator(secret, -time.Minute)
			token, err := expiredGen.GenerateAccessToken("user-1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			otherGen := NewJWTTokenGenerator("other-secret", accessTTL)
			token, err := otherGen.GenerateAccessToken("user-1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject a token signed with a non-HMAC method", func() {
			token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"})
			signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(signed)

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject garbage input", func() {
			_, err := service.ValidateAccessToken("not-a-token")

			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("GetUserByID", func() {
		ginkgo.It("should load the user behind a token claim", func() {
			user, err := service.GetUserByID("22222222-2222-2222-2222-222222222222")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.Email).To(gomega.Equal("admin@example.com"))
		})

		ginkgo.It("should return not found for an unknown id", func() {
			_, err := service.GetUserByID("99999999-9999-9999-9999-999999999999")

			gomega.Expect(err).To(gomega.Equal(ErrUserNotFound))
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should produce a hash that verifies", func() {
			hash, err := service.HashPassword("secret123")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(VerifyPassword(hash, "secret123")).To(gomega.Succeed())
			gomega.Expect(VerifyPassword(hash, "wrong")).ToNot(gomega.Succeed())
		})
	})
})
