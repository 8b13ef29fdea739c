package routes

import (
	"net/http"

	"herbsera/admin"
	"herbsera/auth"
	"herbsera/cart"
	"herbsera/live"
	"herbsera/middleware"
	"herbsera/orders"
	"herbsera/products"
	"herbsera/profile"
	"herbsera/ratelim"
	"herbsera/reviews"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products/products", rl.Limit(middleware.OptionalAuth(products.GetProducts)))
	router.GET("/api/products/featured", products.GetFeaturedProducts)
	router.GET("/api/products/product/:id", middleware.OptionalAuth(products.GetProduct))

	router.POST("/api/products/product", rl.Limit(middleware.Authenticate(middleware.RequireAdmin(products.CreateProduct))))
	router.PUT("/api/products/product/:id", middleware.Authenticate(middleware.RequireAdmin(products.UpdateProduct)))
	router.DELETE("/api/products/product/:id", middleware.Authenticate(middleware.RequireAdmin(products.DeleteProduct)))
	router.POST("/api/products/product/:id/images", middleware.Authenticate(middleware.RequireAdmin(products.UploadProductImage)))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", rl.Limit(middleware.Authenticate(cart.AddToCart)))
	router.PUT("/api/cart/item/:itemId", middleware.Authenticate(cart.UpdateCartItem))
	router.DELETE("/api/cart/item/:itemId", middleware.Authenticate(cart.RemoveFromCart))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders/order", rl.Limit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders/my-orders", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/orders/order/:id", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/orders/order/:id/invoice", middleware.Authenticate(orders.PrintInvoice))
	router.PUT("/api/orders/order/:id/cancel", middleware.Authenticate(orders.CancelOrder))

	router.GET("/api/orders/all", middleware.Authenticate(middleware.RequireAdmin(orders.GetAllOrders)))
	router.PUT("/api/orders/order/:id/status", middleware.Authenticate(middleware.RequireAdmin(orders.UpdateOrderStatus)))
}

func AddReviewRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/reviews/product/:productId", middleware.OptionalAuth(reviews.GetProductReviews))
	router.POST("/api/reviews/review", rl.Limit(middleware.Authenticate(reviews.CreateReview)))
	router.PUT("/api/reviews/review/:id", middleware.Authenticate(reviews.UpdateReview))
	router.DELETE("/api/reviews/review/:id", middleware.Authenticate(reviews.DeleteReview))
	router.POST("/api/reviews/review/:id/helpful", middleware.Authenticate(reviews.MarkHelpful))
}

func AddUserRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/users/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/users/profile", middleware.Authenticate(profile.UpdateProfile))

	router.POST("/api/users/addresses", middleware.Authenticate(profile.AddAddress))
	router.PUT("/api/users/addresses/:addressId", middleware.Authenticate(profile.UpdateAddress))
	router.DELETE("/api/users/addresses/:addressId", middleware.Authenticate(profile.DeleteAddress))

	router.POST("/api/users/wishlist", middleware.Authenticate(profile.AddToWishlist))
	router.DELETE("/api/users/wishlist/:productId", middleware.Authenticate(profile.RemoveFromWishlist))
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/admin/dashboard/stats", middleware.Authenticate(middleware.RequireAdmin(admin.GetDashboardStats)))
	router.GET("/api/admin/users", middleware.Authenticate(middleware.RequireAdmin(admin.GetAllUsers)))
	router.PATCH("/api/admin/users/:userId/role", middleware.Authenticate(middleware.RequireAdmin(admin.UpdateUserRole)))
	router.PATCH("/api/admin/users/:userId/toggle-status", middleware.Authenticate(middleware.RequireAdmin(admin.ToggleUserStatus)))
	router.GET("/api/admin/reviews", middleware.Authenticate(middleware.RequireAdmin(admin.GetAllReviews)))
	router.DELETE("/api/admin/reviews/:reviewId", middleware.Authenticate(middleware.RequireAdmin(admin.DeleteReview)))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/orders", middleware.Authenticate(live.OrderUpdatesHandler(hub)))
}

// RoutesWrapper registers every route group except the live websocket,
// which needs the hub and is added in main.
func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter) {
	AddAuthRoutes(router, rl)
	AddProductRoutes(router, rl)
	AddCartRoutes(router, rl)
	AddOrderRoutes(router, rl)
	AddReviewRoutes(router, rl)
	AddUserRoutes(router, rl)
	AddAdminRoutes(router, rl)
	AddStaticRoutes(router)
}
