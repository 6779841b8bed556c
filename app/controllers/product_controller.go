package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/treasuryofflair/flairmarket/app/repositories"
	"github.com/treasuryofflair/flairmarket/app/services"
	"github.com/treasuryofflair/flairmarket/config"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
	"github.com/treasuryofflair/flairmarket/pkg/bind"
	"github.com/treasuryofflair/flairmarket/pkg/metrics"
	"github.com/treasuryofflair/flairmarket/pkg/middleware"
	"github.com/treasuryofflair/flairmarket/pkg/response"
	"github.com/treasuryofflair/flairmarket/pkg/storage"
)

// ProductController serves the public catalogue and the seller-scoped
// listing mutations.
type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Index handles GET /api/products.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Sort:     q.Get("sort"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", repositories.DefaultLimit),
	}

	products, meta, err := c.service.List(filter, requestBaseURL(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Paginated(w, products, meta)
}

// Show handles GET /api/products/{uuid}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.Get(chi.URLParam(r, "uuid"), requestBaseURL(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, product)
}

// Mine handles GET /api/my/products.
func (c *ProductController) Mine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	products, err := c.service.Mine(identity.ID, requestBaseURL(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, map[string]interface{}{
		"seller": map[string]interface{}{
			"id":    identity.ID,
			"name":  identity.Name,
			"email": identity.Email,
		},
		"data": products,
	})
}

// Store handles POST /api/products. The body is multipart with an optional
// image part; plain JSON works when no image is attached.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var input services.CreateProductInput
	var imagePath string

	if isMultipart(r) {
		if err := parseListingForm(r); err != nil {
			response.Error(w, r, err)
			return
		}

		input.Title = r.FormValue("title")
		input.Category = r.FormValue("category")
		input.Status = r.FormValue("status")

		if raw := r.FormValue("price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				response.Error(w, r, apperr.Validation("Price must be a number"))
				return
			}
			input.Price = price
		}

		if errs := bind.Form(&input); errs != nil {
			response.ValidationError(w, errs)
			return
		}

		path, err := saveUploadedImage(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}
		imagePath = path
	} else {
		if errs, err := bind.JSON(r, &input); err != nil {
			response.Error(w, r, apperr.Validation(err.Error()))
			return
		} else if errs != nil {
			response.ValidationError(w, errs)
			return
		}
	}

	product, err := c.service.Create(identity.ID, input, imagePath, requestBaseURL(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Created(w, product)
}

// Update handles PUT /api/products/{uuid} with partial semantics: a field
// absent from the body keeps its stored value.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var input services.UpdateProductInput
	var imagePath string

	if isMultipart(r) {
		if err := parseListingForm(r); err != nil {
			response.Error(w, r, err)
			return
		}

		input.Title = formValuePtr(r, "title")
		input.Category = formValuePtr(r, "category")
		input.Status = formValuePtr(r, "status")

		if raw := formValuePtr(r, "price"); raw != nil {
			price, err := strconv.ParseFloat(*raw, 64)
			if err != nil {
				response.Error(w, r, apperr.Validation("Price must be a number"))
				return
			}
			input.Price = &price
		}

		path, err := saveUploadedImage(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}
		imagePath = path
	} else {
		var body struct {
			Title    *string  `json:"title"`
			Category *string  `json:"category"`
			Price    *float64 `json:"price"`
			Status   *string  `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, r, apperr.Validation("Invalid JSON body"))
			return
		}
		input.Title = body.Title
		input.Category = body.Category
		input.Price = body.Price
		input.Status = body.Status
	}

	product, err := c.service.Update(identity.ID, chi.URLParam(r, "uuid"), input, imagePath, requestBaseURL(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, product)
}

// Destroy handles DELETE /api/products/{uuid}.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.service.Delete(identity.ID, chi.URLParam(r, "uuid")); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "Product deleted")
}

// parseListingForm parses the multipart body, allowing headroom over the
// image cap for the text fields.
func parseListingForm(r *http.Request) error {
	if err := r.ParseMultipartForm(config.UploadMaxBytes() + 1<<20); err != nil {
		return apperr.Validation("Invalid multipart body")
	}
	return nil
}

// formValuePtr returns the field's value only when the part was present,
// preserving the absent/empty distinction partial updates need.
func formValuePtr(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

// saveUploadedImage stores the optional "image" part and returns its
// disk-relative path, or "" when the part is absent.
func saveUploadedImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", apperr.Validation("Invalid image upload")
	}
	file.Close()

	path, err := storage.SaveImage(header)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return "", err
	}

	metrics.UploadsTotal.WithLabelValues("accepted").Inc()
	return path, nil
}
