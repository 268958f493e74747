package utils

import (
	"context"
	"os"
	"strconv"
	"time"

	"calendar-admin-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// AccessToken carries the user ID and the remote-verified admin attribute.
type AccessToken struct {
	ID      uint `json:"ID"`
	IsAdmin bool `json:"isAdmin"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CreateTokenPair signs an access/refresh token pair. The refresh token is
// registered in Redis when it is available (database backend); the file
// backend runs without a refresh registry and relies on access tokens alone.
func CreateTokenPair(id uint, isAdmin bool) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 24*time.Hour)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), 365*24*time.Hour)

	userID := strconv.FormatUint(uint64(id), 10)

	refreshClaims := jwt.Claims{Subject: userID}
	accessTokenClaims := AccessToken{ID: id, IsAdmin: isAdmin}

	accessToken, err := accessTokenSigner.Sign(accessTokenClaims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	if storage.Redis != nil {
		storage.Redis.Set(bgContext, string(refreshToken), "true", 365*24*time.Hour+5*time.Minute)
	}

	return &tokenPair, nil
}

// RevokeRefreshToken drops a refresh token from the registry on logout.
func RevokeRefreshToken(token string) {
	if storage.Redis == nil || token == "" {
		return
	}
	storage.Redis.Del(bgContext, token)
}

// RefreshToken rotates a verified refresh token for a new pair. Each token is
// single use: it must still be present in the registry and is removed before
// the new pair is issued.
func RefreshToken(verifyAdmin func(id uint) bool) iris.Handler {
	return func(ctx iris.Context) {
		if storage.Redis == nil {
			CreateError(iris.StatusNotImplemented, "Unsupported", "Token refresh requires the database backend.", ctx)
			return
		}

		token := jwt.GetVerifiedToken(ctx)
		tokenStr := string(token.Token)
		validToken, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()

		if tokenErr != nil || validToken != "true" {
			ctx.StatusCode(iris.StatusForbidden)
			return
		}

		storage.Redis.Del(bgContext, tokenStr)
		userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
		if parseErr != nil {
			CreateInternalServerError(ctx)
			return
		}

		// The admin attribute may have been revoked since the last issue
		isAdmin := verifyAdmin(uint(userID))

		tokenPair, tokenPairErr := CreateTokenPair(uint(userID), isAdmin)
		if tokenPairErr != nil {
			CreateInternalServerError(ctx)
			return
		}

		ctx.JSON(iris.Map{
			"accessToken":  string(tokenPair.AccessToken),
			"refreshToken": string(tokenPair.RefreshToken),
		})
	}
}
