package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/busiadev/ecdeavotmis/internal/app/controllers"
	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	institutionController *controllers.InstitutionController,
	learnerController *controllers.LearnerController,
	assetController *controllers.AssetController,
	bookController *controllers.BookController,
	receiptController *controllers.ReceiptController,
	deceasedController *controllers.DeceasedController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// Institution directory is public
	v1.GET("/institutions", institutionController.GetAllInstitutions)
	v1.GET("/institutions/:id", institutionController.GetInstitutionByID)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.GetProfile)
		authenticated.PUT("/auth/me", authController.UpdateProfile)

		// Setup is the one institution operation allowed before a profile
		// is bound to an institution
		authenticated.POST("/institutions/setup", institutionController.SetupInstitution)

		// County administrators hold no institution, so their routes sit
		// outside the institution-scoped group
		county := authenticated.Group("")
		county.Use(authMiddleware.RoleRequired(string(models.RoleCountyAdmin)))
		{
			county.GET("/county/receipts", receiptController.ListCountyReceipts)
			county.PATCH("/receipts/:id/verify", receiptController.VerifyReceipt)
		}

		// Everything below requires a completed institution setup
		scoped := authenticated.Group("")
		scoped.Use(authMiddleware.InstitutionRequired())
		{
			scoped.PUT("/institutions/:id", institutionController.UpdateInstitution)

			learners := scoped.Group("/learners")
			{
				learners.POST("", learnerController.CreateLearner)
				learners.GET("", learnerController.ListLearners)
				learners.GET("/reports/admissions", learnerController.AdmissionReport)
				learners.GET("/:id", learnerController.GetLearnerByID)
				learners.PUT("/:id", learnerController.UpdateLearner)
				learners.DELETE("/:id", learnerController.DeleteLearner)
			}

			assets := scoped.Group("/assets")
			{
				assets.POST("", assetController.CreateAsset)
				assets.GET("", assetController.ListAssets)
				assets.GET("/:id", assetController.GetAssetByID)
				assets.PUT("/:id", assetController.UpdateAsset)
				assets.DELETE("/:id", assetController.DeleteAsset)
			}

			books := scoped.Group("/books")
			{
				books.POST("", bookController.CreateBook)
				books.GET("", bookController.ListBooks)
				books.GET("/:id", bookController.GetBookByID)
				books.PUT("/:id", bookController.UpdateBook)
				books.DELETE("/:id", bookController.DeleteBook)
			}

			receipts := scoped.Group("/receipts")
			{
				receipts.POST("", receiptController.UploadReceipt)
				receipts.GET("", receiptController.ListReceipts)
				receipts.GET("/:id", receiptController.GetReceiptByID)
				receipts.DELETE("/:id", receiptController.DeleteReceipt)
			}

			deceased := scoped.Group("/deceased")
			{
				deceased.POST("", deceasedController.CreateRecord)
				deceased.GET("", deceasedController.ListRecords)
				deceased.GET("/:id", deceasedController.GetRecordByID)
			}

			scoped.GET("/dashboard/stats", dashboardController.GetStats)
		}
	}
}
