package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"herbsera/db"
	"herbsera/models"
	"herbsera/mq"
	"herbsera/rdx"
	"herbsera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Items           []orderLine            `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentInfo     models.PaymentInfo     `json:"paymentInfo"`
}

// foldLines merges lines that repeat a product, keeping first-seen
// order. Validating the combined quantity keeps a request like
// [(P,2),(P,2)] from passing the stock check line by line and then
// decrementing past zero.
func foldLines(items []orderLine) []orderLine {
	folded := make([]orderLine, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if i, ok := index[it.ProductID]; ok {
			folded[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(folded)
		folded = append(folded, it)
	}
	return folded
}

func (req *createOrderRequest) validate() string {
	if len(req.Items) == 0 {
		return "Order must contain at least one item"
	}
	for _, it := range req.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			return "Each item needs a product and a quantity of at least 1"
		}
	}
	if !models.PaymentMethods[req.PaymentMethod] {
		return "Invalid payment method"
	}
	a := req.ShippingAddress
	if a.Name == "" || a.Phone == "" || a.AddressLine1 == "" || a.City == "" || a.State == "" || a.Pincode == "" {
		return "Incomplete shipping address"
	}
	return ""
}

// CreateOrder handles POST /api/orders. All items are validated against
// the live catalog before any stock is touched; prices always come from
// the catalog, never from the request body.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	// Validation pass: every product must exist and cover the requested
	// quantity before anything mutates. Lines repeating a product are
	// folded first so the check sees the combined quantity.
	lines := foldLines(req.Items)
	var subtotal float64
	orderItems := make([]models.OrderItem, 0, len(lines))
	for _, it := range lines {
		var product models.Product
		err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": it.ProductID}).Decode(&product)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				utils.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("Product not found: %s", it.ProductID))
				return
			}
			log.Printf("CreateOrder product lookup failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
			return
		}

		if product.Stock < it.Quantity {
			utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s", product.Name))
			return
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0].URL
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Image:     image,
			Quantity:  it.Quantity,
			Price:     product.Price,
		})
		subtotal += product.Price * float64(it.Quantity)
	}

	pricing := ComputePricing(subtotal)

	// Commit pass: per-item decrements. A failure mid-loop leaves the
	// earlier decrements in place with no order created; recovery is an
	// operator task, not attempted here.
	for _, item := range orderItems {
		_, err := db.ProductsCollection.UpdateOne(ctx,
			bson.M{"productId": item.ProductID},
			bson.M{"$inc": bson.M{"stock": -item.Quantity}})
		if err != nil {
			log.Printf("CreateOrder stock decrement failed for %s: %v", item.ProductID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reserve stock")
			return
		}
		rdx.InvalidateProduct(item.ProductID)
	}

	now := time.Now()
	order := models.Order{
		OrderID:         utils.GenerateRandomString(16),
		UserID:          userID,
		Items:           orderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentInfo:     req.PaymentInfo,
		Pricing:         pricing,
		Status:          models.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// The unique orderNumber index turns a collision into a duplicate-key
	// error; regenerate a few times before giving up.
	inserted := false
	for attempt := 0; attempt < 3; attempt++ {
		order.OrderNumber = GenerateOrderNumber()
		if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			log.Printf("CreateOrder insert failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
			return
		}
		inserted = true
		break
	}
	if !inserted {
		utils.RespondWithError(w, http.StatusConflict, "Could not allocate an order number, please retry")
		return
	}

	if _, err := db.CartsCollection.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		log.Printf("CreateOrder cart cleanup failed for %s: %v", userID, err)
	}

	mq.EmitOrderEvent(ctx, models.OrderEvent{
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
	})

	utils.RespondSuccessMsg(w, http.StatusCreated, order, "Order created successfully")
}

// GetMyOrders handles GET /api/orders/my-orders
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skip, limit, page := utils.ParsePagination(r, 10, 100)
	filter := bson.M{"userId": userID}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		log.Printf("GetMyOrders find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	total, err := db.OrdersCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("GetMyOrders count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	utils.RespondList(w, orders, utils.Pagination{Total: total, Page: page, Pages: utils.Pages(total, limit)})
}

func findOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder handles GET /api/orders/:id (owner or admin).
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := findOrder(ctx, ps.ByName("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("GetOrder lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if order.UserID != userID && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, order)
}

// CancelOrder handles PUT /api/orders/:id/cancel. Stock is handed back
// per item before the status flips; a product deleted since placement
// is skipped rather than failing the cancellation.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := findOrder(ctx, ps.ByName("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("CancelOrder lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	if order.UserID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	if !CanCancel(order.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Order cannot be cancelled at this stage")
		return
	}

	for _, item := range order.Items {
		_, err := db.ProductsCollection.UpdateOne(ctx,
			bson.M{"productId": item.ProductID},
			bson.M{"$inc": bson.M{"stock": item.Quantity}})
		if err != nil {
			log.Printf("CancelOrder stock restore failed for %s: %v", item.ProductID, err)
			continue
		}
		rdx.InvalidateProduct(item.ProductID)
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":      models.OrderCancelled,
		"cancelledAt": now,
		"updatedAt":   now,
	}}
	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"orderId": order.OrderID}, update); err != nil {
		log.Printf("CancelOrder update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	order.Status = models.OrderCancelled
	order.CancelledAt = &now
	order.UpdatedAt = now

	mq.EmitOrderEvent(ctx, models.OrderEvent{
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
	})

	utils.RespondSuccessMsg(w, http.StatusOK, order, "Order cancelled successfully")
}

// GetAllOrders handles GET /api/orders (admin).
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit, page := utils.ParsePagination(r, 20, 100)
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		log.Printf("GetAllOrders find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	total, err := db.OrdersCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("GetAllOrders count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	utils.RespondList(w, orders, utils.Pagination{Total: total, Page: page, Pages: utils.Pages(total, limit)})
}

// UpdateOrderStatus handles PUT /api/orders/:id/status (admin). Admin
// updates accept any defined status without a transition check.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"trackingNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !IsValidStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	order, err := findOrder(ctx, ps.ByName("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("UpdateOrderStatus lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	now := time.Now()
	set := bson.M{"status": input.Status, "updatedAt": now}
	if input.TrackingNumber != "" {
		set["trackingNumber"] = input.TrackingNumber
	}
	if input.Status == models.OrderDelivered {
		set["deliveredAt"] = now
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx, bson.M{"orderId": order.OrderID}, bson.M{"$set": set}); err != nil {
		log.Printf("UpdateOrderStatus update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	order.Status = input.Status
	order.UpdatedAt = now
	if input.TrackingNumber != "" {
		order.TrackingNumber = input.TrackingNumber
	}
	if input.Status == models.OrderDelivered {
		order.DeliveredAt = &now
	}

	mq.EmitOrderEvent(ctx, models.OrderEvent{
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
	})

	utils.RespondSuccessMsg(w, http.StatusOK, order, "Order status updated successfully")
}
