package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartmall/backend/internal/domain"
	"github.com/smartmall/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog  domain.Catalog
	cart     *usecase.CartService
	budget   *usecase.BudgetService
	insights *usecase.InsightsService
	list     *usecase.ShoppingListService
	auth     *usecase.AuthService
	checkout *usecase.CheckoutService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog domain.Catalog,
	cart *usecase.CartService,
	budget *usecase.BudgetService,
	insights *usecase.InsightsService,
	list *usecase.ShoppingListService,
	auth *usecase.AuthService,
	checkout *usecase.CheckoutService,
) *Handler {
	return &Handler{
		catalog:  catalog,
		cart:     cart,
		budget:   budget,
		insights: insights,
		list:     list,
		auth:     auth,
		checkout: checkout,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "smartmall-backend",
		"version": "1.0.0",
	})
}

// --- Catalog ---

// ListProducts returns the full product catalog
func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.catalog.All()})
}

// GetProduct returns a single catalog product by id
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := h.catalog.ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrProductNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListPaymentMethods returns the supported payment options
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"paymentMethods": h.checkout.PaymentMethods()})
}

// --- Scanning ---

// Scan simulates an NFC tap
func (h *Handler) Scan(c *gin.Context) {
	result, err := h.checkout.Scan(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetOfflineMode toggles offline scan queueing
func (h *Handler) SetOfflineMode(c *gin.Context) {
	var req struct {
		Offline *bool `json:"offline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offline flag is required"})
		return
	}
	h.checkout.SetOffline(*req.Offline)
	c.JSON(http.StatusOK, gin.H{"offline": *req.Offline})
}

// OfflinePending returns the number of queued scans awaiting sync
func (h *Handler) OfflinePending(c *gin.Context) {
	pending, err := h.checkout.PendingCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// SyncOfflineScans replays queued scans into the cart
func (h *Handler) SyncOfflineScans(c *gin.Context) {
	synced, err := h.checkout.SyncOfflineScans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": synced})
}

// ClearSyncedScans drops replayed scans from the queue
func (h *Handler) ClearSyncedScans(c *gin.Context) {
	if err := h.checkout.ClearSynced(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Cart ---

// GetCart returns the cart contents with totals
func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
		"count": h.cart.ItemCount(),
	})
}

// AddCartItem adds a catalog product to the cart
func (h *Handler) AddCartItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}
	product, ok := h.catalog.ByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrProductNotFound.Error()})
		return
	}
	line := h.cart.AddItem(product)
	c.JSON(http.StatusOK, line)
}

// UpdateCartItem sets the quantity of a cart line; zero or less removes it
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}
	h.cart.UpdateQuantity(c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, gin.H{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
	})
}

// RemoveCartItem deletes a cart line
func (h *Handler) RemoveCartItem(c *gin.Context) {
	h.cart.RemoveItem(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	c.Status(http.StatusNoContent)
}

// --- Budget ---

// GetBudget returns the derived budget status
func (h *Handler) GetBudget(c *gin.Context) {
	status, err := h.budget.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// UpdateBudgetSettings applies a partial settings update
func (h *Handler) UpdateBudgetSettings(c *gin.Context) {
	var patch domain.BudgetSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}
	settings, err := h.budget.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// CheckBudget projects an amount against the budget without recording it
func (h *Handler) CheckBudget(c *gin.Context) {
	var req struct {
		Amount *float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}
	check, err := h.budget.CheckBudget(c.Request.Context(), *req.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, check)
}

// --- Checkout ---

// Checkout settles the cart with the chosen payment method
func (h *Handler) Checkout(c *gin.Context) {
	var req struct {
		PaymentMethodID string `json:"paymentMethodId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentMethodId is required"})
		return
	}
	receipt, err := h.checkout.Checkout(c.Request.Context(), req.PaymentMethodID)
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptyCart.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, receipt)
	}
}

// --- Insights ---

// WeeklyInsights returns the last seven days of spending with the total
func (h *Handler) WeeklyInsights(c *gin.Context) {
	records, err := h.insights.WeeklySpending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, err := h.insights.WeeklyTotal(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "total": total})
}

// MonthlyInsights returns the last thirty days of spending with the total
func (h *Handler) MonthlyInsights(c *gin.Context) {
	records, err := h.insights.MonthlySpending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, err := h.insights.MonthlyTotal(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "total": total})
}

// CategoryBreakdown returns the per-category share of the monthly spend
func (h *Handler) CategoryBreakdown(c *gin.Context) {
	breakdown, err := h.insights.CategoryBreakdown(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

// ListDeals returns active, unexpired deals
func (h *Handler) ListDeals(c *gin.Context) {
	deals, err := h.insights.ActiveDeals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals})
}

// DismissDeal removes a deal permanently
func (h *Handler) DismissDeal(c *gin.Context) {
	if err := h.insights.DismissDeal(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListReminders returns refill reminders inside the visibility window
func (h *Handler) ListReminders(c *gin.Context) {
	reminders, err := h.insights.ActiveReminders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// DismissReminder removes a refill reminder permanently
func (h *Handler) DismissReminder(c *gin.Context) {
	if err := h.insights.DismissReminder(c.Request.Context(), c.Param("productId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPriceAlerts returns undismissed price alerts
func (h *Handler) ListPriceAlerts(c *gin.Context) {
	alerts, err := h.insights.PriceAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"priceAlerts": alerts})
}

// DismissPriceAlert removes a price alert permanently
func (h *Handler) DismissPriceAlert(c *gin.Context) {
	if err := h.insights.DismissPriceAlert(c.Request.Context(), c.Param("productId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Shopping list ---

// GetShoppingList returns the list in insertion order
func (h *Handler) GetShoppingList(c *gin.Context) {
	items, err := h.list.Items(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddShoppingListItem appends an entry; productId is optional
func (h *Handler) AddShoppingListItem(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	item, err := h.list.Add(c.Request.Context(), req.Name, req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ToggleShoppingListItem flips an entry's checked state
func (h *Handler) ToggleShoppingListItem(c *gin.Context) {
	if err := h.list.Toggle(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveShoppingListItem deletes an entry
func (h *Handler) RemoveShoppingListItem(c *gin.Context) {
	if err := h.list.Remove(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCheckedShoppingListItems removes every checked entry
func (h *Handler) ClearCheckedShoppingListItems(c *gin.Context) {
	if err := h.list.ClearChecked(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearShoppingList empties the list
func (h *Handler) ClearShoppingList(c *gin.Context) {
	if err := h.list.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestProducts matches catalog products against a free-text query
func (h *Handler) SuggestProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": h.list.Suggest(c.Query("q"))})
}

// --- Auth ---

// Register creates a demo account and starts a session
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, password and name are required"})
		return
	}
	result, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Login authenticates and starts a session
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout ends the current session
func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the logged-in user
func (h *Handler) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// PurchaseHistory returns the current user's purchases, newest first
func (h *Handler) PurchaseHistory(c *gin.Context) {
	history, err := h.auth.PurchaseHistory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if history == nil {
		history = []domain.PurchaseHistory{}
	}
	c.JSON(http.StatusOK, gin.H{"purchases": history})
}
