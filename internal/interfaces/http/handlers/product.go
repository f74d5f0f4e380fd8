// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/catalog"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	catalog *catalog.Service
	config  *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(cat *catalog.Service, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		catalog: cat,
		config:  cfg,
	}
}

// UpdateStockRequest is the stock adjustment payload
type UpdateStockRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Mode     string `json:"mode" binding:"required,oneof=set add subtract"`
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filter catalog.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	products, err := h.catalog.Query(c.Request.Context(), c.Query("q"), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
		"count":   len(products),
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// ListCategories handles GET /categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve categories",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}

// GetProductsByCategory handles GET /categories/:id/products
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	products, err := h.catalog.ByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
		"count":   len(products),
	})
}

// GetFeatured handles GET /products/featured
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	products, err := h.catalog.Featured(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve featured products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Featured products retrieved successfully",
		"data":    products,
	})
}

// GetDiscounted handles GET /products/discounted
func (h *ProductHandler) GetDiscounted(c *gin.Context) {
	products, err := h.catalog.Discounted(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve discounted products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discounted products retrieved successfully",
		"data":    products,
	})
}

// GetBestSelling handles GET /products/best-selling
func (h *ProductHandler) GetBestSelling(c *gin.Context) {
	products, err := h.catalog.BestSelling(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve best sellers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Best selling products retrieved successfully",
		"data":    products,
	})
}

// GetRelated handles GET /products/:id/related
func (h *ProductHandler) GetRelated(c *gin.Context) {
	products, err := h.catalog.Related(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve related products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Related products retrieved successfully",
		"data":    products,
	})
}

// UpdateStock handles PUT /products/:id/stock
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.AdjustStock(c.Request.Context(), c.Param("id"), req.Quantity, catalog.StockMode(req.Mode))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock updated successfully",
		"data":    product,
	})
}

// GetStats handles GET /products/stats
func (h *ProductHandler) GetStats(c *gin.Context) {
	stats, err := h.catalog.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute catalog statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Catalog statistics retrieved successfully",
		"data":    stats,
	})
}

// ExportProducts handles GET /products/export
func (h *ProductHandler) ExportProducts(c *gin.Context) {
	switch c.DefaultQuery("format", "json") {
	case "csv":
		data, err := h.catalog.ExportCSV(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to export products",
			})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=products.csv")
		c.Data(http.StatusOK, "text/csv", data)
	case "json":
		data, err := h.catalog.ExportJSON(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to export products",
			})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=products.json")
		c.Data(http.StatusOK, "application/json", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unsupported export format",
		})
	}
}
