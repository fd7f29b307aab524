// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. The [TokenService] is built once at startup from explicit
// settings and injected wherever tokens are issued or verified.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside an access token.
//
// The identity claims are what the auth middleware puts in the request
// context, so no store lookup happens on authenticated requests.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
	Email  string `json:"email"`
}

// TokenConfig carries the issuer settings. It is filled from configuration at
// startup and never read from the environment afterwards.
type TokenConfig struct {
	Secret     string
	TimeToLive time.Duration
	Issuer     string
}

// TokenService issues and verifies HS256-signed access tokens.
type TokenService struct {
	secret     []byte
	timeToLive time.Duration
	issuer     string
	now        func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("sec: token secret is required")
	}
	if cfg.TimeToLive <= 0 {
		return nil, errors.New("sec: token lifetime must be positive")
	}

	return &TokenService{
		secret:     []byte(cfg.Secret),
		timeToLive: cfg.TimeToLive,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}, nil
}

// GenerateToken signs a token carrying {id, email} that expires after the configured lifetime.
func (service *TokenService) GenerateToken(userID, email string) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.timeToLive)),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and expiry of a token string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(service.now), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}

// TimeToLive reports the configured token lifetime.
func (service *TokenService) TimeToLive() time.Duration {
	return service.timeToLive
}
