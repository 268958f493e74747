package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"calendar-admin-server/routes"
	"calendar-admin-server/services"
	"calendar-admin-server/storage"
	"calendar-admin-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()

	// Select the persistence/auth backend. Everything behind the DayStore and
	// AuthGate interfaces is identical for both.
	backend := os.Getenv("CALENDAR_BACKEND")
	if backend == "" {
		backend = "postgres"
	}

	switch backend {
	case "postgres":
		db := storage.InitializeDB()
		storage.InitializeRedis()
		routes.Store = &services.DatabaseStore{DB: db}
		routes.Gate = &services.DatabaseGate{DB: db}
	case "file":
		path := os.Getenv("CALENDAR_FILE")
		if path == "" {
			path = "calendar_data.json"
		}
		file := storage.OpenLocalFile(path)
		gate := &services.StaticGate{
			File:         file,
			Email:        os.Getenv("ADMIN_EMAIL"),
			Password:     os.Getenv("ADMIN_PASSWORD"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		}
		if gate.Email == "" || (gate.Password == "" && gate.PasswordHash == "") {
			log.Panic("ADMIN_EMAIL and ADMIN_PASSWORD (or ADMIN_PASSWORD_HASH) are required for the file backend")
		}
		routes.Store = &services.FileStore{File: file}
		routes.Gate = gate
		log.Println("⚠️  File backend: the static credential gate protects the edit UI only, it is not a security boundary")
	default:
		log.Panicf("unknown CALENDAR_BACKEND %q (expected postgres or file)", backend)
	}

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the calendar frontend
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/login", routes.Login)
		user.Post("/provider", routes.ProviderLoginOrSignUp)
		user.Get("/session", accessTokenVerifierMiddleware, routes.GetSession)
		user.Post("/logout", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.Logout)
	}

	calendar := app.Party("/api/calendar")
	{
		calendar.Get("/", routes.GetCalendar)
		calendar.Get("/month", routes.GetMonthView)
		calendar.Get("/week", routes.GetWeekView)
		calendar.Get("/labels", routes.StatusLabels)
		calendar.Post("/day", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpsertDay)

		edit := calendar.Party("/edit", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
		{
			edit.Get("/", routes.GetEditState)
			edit.Post("/open", routes.OpenEdit)
			edit.Post("/status", routes.SelectEditStatus)
			edit.Post("/message", routes.SetEditMessage)
			edit.Post("/commit", routes.CommitEdit)
			edit.Post("/cancel", routes.CancelEdit)
		}
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken(func(id uint) bool {
		_, err := routes.Gate.VerifyAdmin(context.Background(), id)
		return err == nil
	}))

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
