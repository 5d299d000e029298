package main

import (
	"fmt"
	"log"
	"strings"

	"union-backend/internal/apperr"
	"union-backend/internal/auth"
	"union-backend/internal/category"
	"union-backend/internal/config"
	"union-backend/internal/database"
	"union-backend/internal/document"
	"union-backend/internal/metrics"
	"union-backend/internal/news"
	"union-backend/internal/project"
	"union-backend/internal/stats"
	"union-backend/internal/team"
	"union-backend/internal/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	store, err := upload.NewStore(cfg.DocumentsDir, cfg.ImagesDir)
	if err != nil {
		log.Fatalf("Upload directories could not be prepared: %v", err)
	}

	users := auth.NewRepository(db)
	revoked := auth.NewRevocationList(cfg.RevokeOnLogout)
	teamRepo := team.NewRepository(db)
	categoryRepo := category.NewRepository(db)
	documentRepo := document.NewRepository(db)
	newsRepo := news.NewRepository(db)
	projectRepo := project.NewRepository(db)
	statsRepo := stats.NewRepository(db)

	app := fiber.New(fiber.Config{
		BodyLimit:    upload.MaxDocumentSize + 1024*1024, // multipart overhead on top of the largest upload
		ErrorHandler: apperr.ErrorHandler,
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(logger.New())
	app.Use(metrics.Middleware())

	// Uploaded assets are served verbatim; a miss falls through to the
	// API routes below, so /documents/:id keeps working.
	app.Static("/documents", cfg.DocumentsDir)
	app.Static("/images", cfg.ImagesDir)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	protect := auth.JWTMiddleware(cfg, users, revoked)

	// Auth
	app.Post("/auth/register", auth.RegisterHandler(users))
	app.Post("/auth/login", auth.LoginHandler(cfg, users))
	app.Get("/auth/me", protect, auth.MeHandler(users))
	app.Post("/auth/logout", protect, auth.LogoutHandler(revoked))

	// Dictionary categories and their items
	app.Get("/categories", category.GetAllCategoriesHandler(categoryRepo))
	app.Get("/categories/:id", category.GetCategoryHandler(categoryRepo))
	app.Post("/categories", protect, category.CreateCategoryHandler(categoryRepo))
	app.Put("/categories/:id", protect, category.UpdateCategoryHandler(categoryRepo))
	app.Delete("/categories/:id", protect, category.DeleteCategoryHandler(categoryRepo))
	app.Post("/categories/:categoryId/items", protect, category.AddItemHandler(categoryRepo))
	app.Put("/categories/:categoryId/items/:itemId", protect, category.UpdateItemHandler(categoryRepo))
	app.Delete("/categories/:categoryId/items/:itemId", protect, category.DeleteItemHandler(categoryRepo))

	// Documents
	app.Get("/documents", document.GetAllDocumentsHandler(documentRepo))
	app.Get("/documents/:id", document.GetDocumentHandler(documentRepo))
	app.Post("/documents", protect, document.CreateDocumentHandler(documentRepo, store))
	app.Put("/documents/:id", protect, document.UpdateDocumentHandler(documentRepo, store))
	app.Delete("/documents/:id", protect, document.DeleteDocumentHandler(documentRepo, store))

	// News
	app.Get("/news", news.GetAllNewsHandler(newsRepo))
	app.Get("/news/:id", news.GetNewsHandler(newsRepo))
	app.Post("/news", protect, news.CreateNewsHandler(newsRepo, store))
	app.Put("/news/:id", protect, news.UpdateNewsHandler(newsRepo, store))
	app.Delete("/news/:id", protect, news.DeleteNewsHandler(newsRepo, store))

	// Projects
	app.Get("/projects", project.GetAllProjectsHandler(projectRepo))
	app.Get("/projects/:id", project.GetProjectHandler(projectRepo))
	app.Post("/projects", protect, project.CreateProjectHandler(projectRepo, store))
	app.Put("/projects/:id", protect, project.UpdateProjectHandler(projectRepo, store))
	app.Delete("/projects/:id", protect, project.DeleteProjectHandler(projectRepo, store))

	// Team members. The named routes must come before /:id.
	app.Get("/team-members", team.GetAllMembersHandler(teamRepo))
	app.Get("/team-members/chairman", team.GetChairmanHandler(teamRepo))
	app.Get("/team-members/deputy-chairman", team.GetDeputyChairmanHandler(teamRepo))
	app.Get("/team-members/supervisors", team.GetSupervisorsHandler(teamRepo))
	app.Get("/team-members/:id", team.GetMemberHandler(teamRepo))
	app.Post("/team-members", protect, team.CreateMemberHandler(teamRepo, store))
	app.Put("/team-members/:id", protect, team.UpdateMemberHandler(teamRepo, store))
	app.Delete("/team-members/:id", protect, team.DeleteMemberHandler(teamRepo, store))

	// Main page stats
	app.Get("/main-page-stats", stats.GetStatsHandler(statsRepo))
	app.Put("/main-page-stats", protect, stats.UpdateStatsHandler(statsRepo))

	app.Use(func(c *fiber.Ctx) error {
		return apperr.NotFound(fmt.Sprintf("Route %s does not exist", c.OriginalURL()))
	})

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
