package token

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/hertz-contrib/jwt"

	"SiteOK/config"
)

const (
	IdentityKey = "uid"
	RoleKey     = "role"

	RoleAdmin = "admin"
	RoleGuard = "guard"
)

var (
	// 这个实例会被 middleware 和 token 包共同使用
	sharedGenerator *jwt.HertzJWTMiddleware

	errGeneratorUninitialized = errors.New("token generator is not initialized")
	errMissingSecret          = errors.New("JWT_SECRET is not configured")
	errInvalidToken           = errors.New("invalid token")
	errInvalidClaims          = errors.New("invalid token claims")
)

func Init() error {
	if config.Cfg.JWTSecret == "" {
		return errMissingSecret
	}

	var err error
	sharedGenerator, err = jwt.New(&jwt.HertzJWTMiddleware{
		Key:         []byte(config.Cfg.JWTSecret),
		Timeout:     time.Duration(config.Cfg.JWTExpireHours) * time.Hour,
		MaxRefresh:  time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour,
		IdentityKey: IdentityKey,
		TimeFunc:    time.Now,
	})

	if err != nil {
		return fmt.Errorf("failed to initialize token generator: %w", err)
	}

	return nil
}

// GetGenerator 获取共享的 token 生成器（供 middleware 使用）
func GetGenerator() *jwt.HertzJWTMiddleware {
	return sharedGenerator
}

// Generate 为管理员或门卫签发带 role 声明的 access token。
func Generate(subjectID string, role string) (accessToken string, expiresIn int, err error) {
	if sharedGenerator == nil {
		return "", 0, errGeneratorUninitialized
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(config.Cfg.JWTExpireHours) * time.Hour)

	claims := jwtv5.MapClaims{
		IdentityKey: subjectID,
		RoleKey:     role,
		"iat":       now.Unix(),
		"exp":       expiresAt.Unix(),
	}

	tokenObj := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	accessToken, err = tokenObj.SignedString([]byte(config.Cfg.JWTSecret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	expiresIn = int(time.Until(expiresAt).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	return accessToken, expiresIn, nil
}

// Validate 校验 token 并返回身份与角色。
func Validate(tokenString string) (subjectID, role string, err error) {
	token, err := jwtv5.ParseWithClaims(tokenString, jwtv5.MapClaims{}, func(token *jwtv5.Token) (interface{}, error) {
		if token.Method != jwtv5.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v, expected HS256", token.Header["alg"])
		}
		return []byte(config.Cfg.JWTSecret), nil
	})

	if err != nil {
		return "", "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", "", errInvalidToken
	}

	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", "", errInvalidClaims
	}

	uid, ok := claims[IdentityKey].(string)
	if !ok {
		if uidFloat, ok := claims[IdentityKey].(float64); ok {
			uid = fmt.Sprintf("%.0f", uidFloat)
		} else {
			return "", "", errInvalidClaims
		}
	}

	role, _ = claims[RoleKey].(string)

	return uid, role, nil
}
