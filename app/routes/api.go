// Package routes wires controllers, middleware, and services onto the
// router.
package routes

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/controllers"
	"github.com/treasuryofflair/flairmarket/app/jobs"
	"github.com/treasuryofflair/flairmarket/app/repositories"
	"github.com/treasuryofflair/flairmarket/app/services"
	"github.com/treasuryofflair/flairmarket/pkg/metrics"
	"github.com/treasuryofflair/flairmarket/pkg/middleware"
	"github.com/treasuryofflair/flairmarket/pkg/response"
	"github.com/treasuryofflair/flairmarket/pkg/router"
	"github.com/treasuryofflair/flairmarket/pkg/session"
	"github.com/treasuryofflair/flairmarket/pkg/storage"
	"github.com/treasuryofflair/flairmarket/pkg/workerpool"
)

// RegisterAPI mounts every route. The database handle and task pool come
// from the server boot; nothing here reaches for globals.
func RegisterAPI(r *router.Router, db *gorm.DB, pool *workerpool.Pool) {
	sellerRepo := repositories.NewSellerRepository(db)
	productRepo := repositories.NewProductRepository(db)
	artworkRepo := repositories.NewArtworkRepository(db)
	accountRepo := repositories.NewAccountRepository(db)

	authService := services.NewAuthService(sellerRepo)
	productService := services.NewProductService(productRepo, pool, jobs.CleanupBlob)
	artworkService := services.NewArtworkService(artworkRepo)
	accountService := services.NewAccountService(accountRepo)

	authController := controllers.NewAuthController(authService)
	productController := controllers.NewProductController(productService)
	artworkController := controllers.NewArtworkController(artworkService)
	accountController := controllers.NewAccountController(accountService)

	// A valid token alone is not enough: the seller row must still exist.
	requireAuth := middleware.Auth(func(_ context.Context, id uint) (middleware.Identity, bool) {
		seller, ok := authService.Identity(id)
		if !ok {
			return middleware.Identity{}, false
		}
		return middleware.Identity{ID: seller.ID, Name: seller.Name, Email: seller.Email}, true
	})

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	authGroup := r.Group("/auth")
	authGroup.Post("/register", "auth.register", authController.Register)
	authGroup.Post("/login", "auth.login", authController.Login)

	api := r.Group("/api")
	api.Get("/products", "products.index", productController.Index)
	api.Get("/products/{uuid}", "products.show", productController.Show)
	api.Get("/search", "artworks.search", artworkController.Search)

	api.Post("/products", "products.store", productController.Store, requireAuth)
	api.Put("/products/{uuid}", "products.update", productController.Update, requireAuth)
	api.Delete("/products/{uuid}", "products.destroy", productController.Destroy, requireAuth)
	api.Get("/my/products", "products.mine", productController.Mine, requireAuth)

	account := r.Group("/account", session.Middleware(session.DefaultOptions()))
	account.Post("/signup", "account.signup", accountController.Signup)
	account.Post("/login", "account.login", accountController.Login)
	account.Get("/home", "account.home", accountController.Home)
	account.Delete("/", "account.destroy", accountController.Destroy)

	// Local-disk uploads are served straight off the filesystem. S3 images
	// carry absolute URLs and never hit this route.
	if root := storage.LocalRoot(); root != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(root+"/uploads")))
		r.Mount("/uploads", fs)
	}
}
