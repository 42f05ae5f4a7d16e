package main

import (
	"fmt"
	"log"
	"os"

	"site-valuation/internal/api/handlers"
	"site-valuation/internal/api/middleware"
	"site-valuation/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	projectDir := os.Getenv("PROJECT_DIR")
	if projectDir == "" {
		projectDir = "./data/projects"
	}
	projectStore, err := store.Open(projectDir)
	if err != nil {
		log.Fatalf("Failed to open project store at %s: %v", projectDir, err)
	}
	log.Printf("Project store: %s (%d projects)", projectDir, projectStore.Count())

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	scenarioHandler := handlers.NewScenarioHandler()
	technologyHandler := handlers.NewTechnologyHandler()
	projectsHandler := handlers.NewProjectsHandler(projectStore)
	exportHandler := handlers.NewExportHandler(projectStore)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", scenarioHandler.RunScenario)

		api.GET("/technologies", technologyHandler.ListTechnologies)
		api.POST("/calculate/:technology", technologyHandler.Calculate)

		users := api.Group("/users/:user")
		users.GET("/projects", projectsHandler.ListProjects)
		users.POST("/projects", projectsHandler.CreateProject)
		users.GET("/projects/:id", projectsHandler.GetProject)
		users.PUT("/projects/:id", projectsHandler.UpdateProject)
		users.DELETE("/projects/:id", projectsHandler.DeleteProject)
		users.POST("/projects/:id/run", projectsHandler.RunProject)
		users.GET("/projects/:id/export", exportHandler.ExportProject)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
