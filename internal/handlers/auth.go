package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/tanksmart/internal/config"
	"github.com/example/tanksmart/internal/middleware"
	"github.com/example/tanksmart/internal/models"
	"github.com/example/tanksmart/internal/utils"
)

// AuthHandler authenticates back-office operators.
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler constructs AuthHandler and seeds the first admin account
// from the environment when the table is empty.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	h := &AuthHandler{db: db, cfg: cfg}
	h.seedAdmin()
	return h
}

func (h *AuthHandler) seedAdmin() {
	var count int64
	if err := h.db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		log.Printf("[Auth] admin count failed: %v", err)
		return
	}
	if count > 0 {
		return
	}
	if h.cfg.AdminEmail == "" || h.cfg.AdminPassword == "" {
		log.Println("[Auth] no admin accounts and ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return
	}

	hash, err := utils.HashPassword(h.cfg.AdminPassword)
	if err != nil {
		log.Printf("[Auth] admin seed hash failed: %v", err)
		return
	}

	admin := models.AdminUser{
		Email:        strings.ToLower(h.cfg.AdminEmail),
		Name:         h.cfg.AdminName,
		PasswordHash: hash,
	}
	if err := h.db.Create(&admin).Error; err != nil {
		log.Printf("[Auth] admin seed failed: %v", err)
		return
	}
	log.Printf("[Auth] seeded admin account %s", admin.Email)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies admin credentials and issues a JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	var admin models.AdminUser
	err := h.db.WithContext(c.Context()).
		First(&admin, "email = ?", strings.ToLower(req.Email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, admin.ID, h.cfg.TokenExpires)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    admin.ID,
				"email": admin.Email,
				"name":  admin.Name,
			},
		},
	})
}

// Me returns the authenticated admin's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var admin models.AdminUser
	err := h.db.WithContext(c.Context()).First(&admin, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": admin})
}
