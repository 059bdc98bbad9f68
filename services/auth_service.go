package services

import (
	"context"
	"errors"
	"lojastreet_server/lib"
	"lojastreet_server/structs"
	"lojastreet_server/structs/tables"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type AuthService struct {
	logger    *gecho.Logger
	cfg       *structs.Config
	admins    AdminStore
	blacklist TokenBlacklist
	clock     lib.Clock
}

// NewAuthService wires admin authentication. blacklist may be nil, in which
// case logout only clears the cookie.
func NewAuthService(cfg *structs.Config, logger *gecho.Logger, admins AdminStore, blacklist TokenBlacklist, clock lib.Clock) *AuthService {
	if clock == nil {
		clock = lib.RealClock{}
	}
	return &AuthService{
		logger:    logger,
		cfg:       cfg,
		admins:    admins,
		blacklist: blacklist,
		clock:     clock,
	}
}

// Login checks the credentials and issues an access token. Unknown e-mails and
// wrong passwords produce the same error.
func (as *AuthService) Login(ctx context.Context, authRequest *structs.AuthRequest) (*structs.LoginResponse, error) {
	startTime := time.Now()
	email := strings.ToLower(strings.TrimSpace(authRequest.Email))

	admin, err := as.admins.FindByEmail(ctx, email)
	if err != nil {
		if !lib.IsNotFound(err) {
			as.logger.Error("Unexpected database error during login", gecho.Field("error", err))
		} else {
			as.logger.Debug("Admin not found during login attempt", gecho.Field("identifier", email))
		}
		// Always return invalid credentials (don't leak user existence)
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(authRequest.Password, admin.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash", gecho.Field("error", err), gecho.Field("admin_id", admin.ID))
		return nil, lib.ErrInvalidCredentials
	}
	if !valid {
		as.logger.Debug("Invalid password attempt", gecho.Field("admin_id", admin.ID))
		return nil, lib.ErrInvalidCredentials
	}

	token, expiresAt, err := as.GenerateAccessToken(admin)
	if err != nil {
		as.logger.Error("Failed to generate access token", gecho.Field("error", err), gecho.Field("admin_id", admin.ID))
		return nil, err
	}

	as.logger.Debug("Admin logged in successfully",
		gecho.Field("admin_id", admin.ID),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)

	return &structs.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toAdminProfile(admin),
	}, nil
}

// GenerateAccessToken signs an admin token valid for the configured expiry.
func (as *AuthService) GenerateAccessToken(admin *tables.AdminUser) (string, time.Time, error) {
	now := as.clock.Now()
	expiresAt := now.Add(as.cfg.Auth.AccessTokenExpiry)

	token, err := lib.SignToken(&structs.AuthClaims{
		Sub:   admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
		Role:  lib.AdminRole,
		Iat:   now,
		Exp:   expiresAt,
		Jti:   uuid.New(),
	}, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// ValidateToken parses an admin token and rejects revoked ones. A blacklist
// lookup failure is logged and the token is accepted.
func (as *AuthService) ValidateToken(ctx context.Context, token string) (*structs.AuthClaims, error) {
	claims, err := lib.ParseToken(token, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return nil, err
	}
	if claims.Role != lib.AdminRole {
		return nil, lib.ErrInvalidToken
	}

	if as.blacklist != nil {
		revoked, err := as.blacklist.IsTokenBlacklisted(ctx, claims.Jti)
		if err != nil {
			as.logger.Warn("Failed to check if token is blacklisted", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		} else if revoked {
			return nil, lib.ErrInvalidToken
		}
	}

	return claims, nil
}

// Logout revokes the token until it would have expired.
func (as *AuthService) Logout(ctx context.Context, claims *structs.AuthClaims) error {
	if claims == nil {
		return lib.ErrInvalidToken
	}
	if as.blacklist == nil {
		return nil
	}

	if err := as.blacklist.BlacklistToken(ctx, claims.Jti, claims.Exp); err != nil {
		as.logger.Error("Failed to blacklist token", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		return err
	}

	as.logger.Debug("Admin logged out", gecho.Field("admin_id", claims.Sub))
	return nil
}

// Me returns the profile behind a validated token.
func (as *AuthService) Me(ctx context.Context, claims *structs.AuthClaims) (*structs.AdminProfile, error) {
	if claims == nil {
		return nil, lib.ErrInvalidToken
	}

	admin, err := as.admins.FindByID(ctx, claims.Sub)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return nil, lib.ErrInvalidToken
		}
		return nil, err
	}

	profile := toAdminProfile(admin)
	return &profile, nil
}

// CookieOptions returns the session cookie settings for this deployment.
func (as *AuthService) CookieOptions() lib.CookieOptions {
	return lib.CookieOptions{
		Production: as.cfg.Server.Environment == "production",
		Domain:     as.cfg.Auth.CookieDomain,
	}
}

func toAdminProfile(admin *tables.AdminUser) structs.AdminProfile {
	return structs.AdminProfile{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
	}
}
