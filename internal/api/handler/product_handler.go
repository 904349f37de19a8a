package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/api/metrics"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
)

// allowedImageTypes is the upload content-type whitelist.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

type ProductHandler struct {
	productService ports.ProductService
	maxUploadBytes int64
}

func NewProductHandler(productService ports.ProductService, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{productService: productService, maxUploadBytes: maxUploadBytes}
}

// List returns the catalog, optionally filtered by active status.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        is_active  query     bool  false  "Filter by active status"
// @Success      200        {object}  productListResponse
// @Failure      401        {object}  map[string]string
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	var isActive *bool
	if raw := c.QueryParam("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "is_active must be a boolean")
		}
		isActive = &v
	}

	products, err := h.productService.List(c.Request().Context(), isActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Products: products})
}

// Get returns a single product.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a product to the catalog. Admin only.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productCreateRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      403   {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, product)
}

// Update applies a partial update to a product. Admin only.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Product ID"
// @Param        body  body      productUpdateRequest  true  "Fields to update"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	var req productUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.productService.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, product)
}

// Delete soft-deletes a product. Admin only.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  int  true  "Product ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}

// UploadImage stores a product image and records its URL. Admin only.
//
// @Summary      Upload a product image
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int   true  "Product ID"
// @Param        image  formData  file  true  "Image file (jpeg/png/webp, max 5MB)"
// @Success      200    {object}  imageUploadResponse
// @Failure      400    {object}  map[string]string
// @Router       /api/products/{id}/image [post]
func (h *ProductHandler) UploadImage(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "image exceeds the maximum upload size")
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if _, ok := allowedImageTypes[contentType]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "image must be jpeg, png or webp")
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	product, err := h.productService.AttachImage(c.Request().Context(), id, src, contentType)
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.ImageUploadsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, imageUploadResponse{ImageURL: product.ImageURL})
}

func productID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}
