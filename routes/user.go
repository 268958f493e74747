package routes

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"calendar-admin-server/models"
	"calendar-admin-server/services"
	"calendar-admin-server/storage"
	"calendar-admin-server/utils"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProviderLoginInput struct {
	IdentityToken string `json:"identityToken" validate:"required"`
}

type LogoutInput struct {
	RefreshToken string `json:"refreshToken"`
}

func returnSession(session *services.AdminSession, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(session.UserID, true)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"userID":       session.UserID,
		"email":        session.Email,
		"username":     session.Username,
		"isAdmin":      true,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

// Login authenticates email/password against the active auth gate. A valid
// non-admin login is rejected with no session, matching the admin-only rule.
func Login(ctx iris.Context) {
	var userInput LoginInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	session, authErr := Gate.Authenticate(ctx.Request().Context(), userInput.Email, userInput.Password)
	if authErr != nil {
		if errors.Is(authErr, services.ErrNotAdmin) {
			utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Not an admin user.", ctx)
			return
		}
		if errors.Is(authErr, services.ErrInvalidCredentials) {
			utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid email or password.", ctx)
			return
		}
		log.Printf("❌ Login error: %v", authErr)
		utils.CreateInternalServerError(ctx)
		return
	}

	returnSession(session, ctx)
}

// ProviderLoginOrSignUp verifies an identity provider's ID token against its
// JWKS and logs the matching user in. Unknown identities get a user row but
// never a session: the admin attribute still rules. Database backend only.
func ProviderLoginOrSignUp(ctx iris.Context) {
	if storage.DB == nil {
		utils.CreateError(iris.StatusNotImplemented, "Unsupported", "Provider login requires the database backend.", ctx)
		return
	}

	var userInput ProviderLoginInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	jwksURL := os.Getenv("IDENTITY_JWKS_URL")
	if jwksURL == "" {
		utils.CreateError(iris.StatusNotImplemented, "Unsupported", "No identity provider configured.", ctx)
		return
	}

	res, httpErr := http.Get(jwksURL)
	if httpErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	jwks, jwksErr := keyfunc.NewJSON(body)
	// Keyfunc selects the JWKS key matching the token's kid and returns its
	// public key as the right Go type.
	token, tokenErr := jwt.Parse(userInput.IdentityToken, jwks.Keyfunc)

	if jwksErr != nil || tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !token.Valid {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid identity token.", ctx)
		return
	}

	email := fmt.Sprint(token.Claims.(jwt.MapClaims)["email"])
	if email == "" || email == "<nil>" {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Identity token carries no email.", ctx)
		return
	}

	var user models.User
	result := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if result.RowsAffected == 0 {
		user = models.User{Email: strings.ToLower(email), SocialLogin: true, SocialProvider: "identity-provider"}
		storage.DB.Create(&user)
	}

	if !user.IsAdmin {
		// Signed in at the provider, but not an admin here: no session.
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Not an admin user.", ctx)
		return
	}

	returnSession(&services.AdminSession{UserID: user.ID, Email: user.Email, Username: user.Username}, ctx)
}

// GetSession restores a prior session: a valid access token alone is not
// enough, the admin attribute is re-verified against the gate.
func GetSession(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	session, err := Gate.VerifyAdmin(ctx.Request().Context(), claims.ID)
	if err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "No admin session.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    session,
	})
}

// Logout clears the session: gate-held state and the submitted refresh token.
func Logout(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input LogoutInput
	if err := ctx.ReadJSON(&input); err == nil {
		utils.RevokeRefreshToken(input.RefreshToken)
	}

	if err := Gate.Logout(ctx.Request().Context(), claims.ID); err != nil {
		log.Printf("❌ Logout error: %v", err)
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
