package spoonacular

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nutritrack/nutritrack/internal/config"
)

// Client exposes the Spoonacular operations used by the recipe import job.
type Client interface {
	SearchRecipes(ctx context.Context, number int) ([]SearchResult, error)
	GetRecipeInformation(ctx context.Context, id int) (*RecipeInformation, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	apiKey     string
}

// NewClient builds a Spoonacular API client from configuration values.
func NewClient(cfg config.SpoonacularConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		apiKey:     cfg.APIKey,
	}
}

// SearchResult is one hit from the complexSearch endpoint.
type SearchResult struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// RecipeInformation mirrors the fields of the information endpoint the
// import job maps into the catalog.
type RecipeInformation struct {
	ID                  int      `json:"id"`
	Title               string   `json:"title"`
	Servings            int      `json:"servings"`
	PreparationMinutes  int      `json:"preparationMinutes"`
	CookingMinutes      int      `json:"cookingMinutes"`
	Image               string   `json:"image"`
	DishTypes           []string `json:"dishTypes"`
	Diets               []string `json:"diets"`
	ExtendedIngredients []struct {
		Name string `json:"name"`
	} `json:"extendedIngredients"`
	Nutrition struct {
		Nutrients []struct {
			Title  string  `json:"title"`
			Amount float64 `json:"amount"`
			Unit   string  `json:"unit"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

// Calories returns the per-serving calorie amount, or 0 when the nutrition
// block does not carry one.
func (ri *RecipeInformation) Calories() float64 {
	for _, n := range ri.Nutrition.Nutrients {
		if n.Title == "Calories" {
			return n.Amount
		}
	}
	return 0
}

// apiError represents a Spoonacular error payload.
type apiError struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SearchRecipes fetches a batch of random recipes from complexSearch.
func (c *APIClient) SearchRecipes(ctx context.Context, number int) ([]SearchResult, error) {
	result := new(searchResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey": c.apiKey,
			"number": fmt.Sprintf("%d", number),
			"sort":   "random",
		}).
		SetResult(result).
		SetError(apiErr).
		Get("/recipes/complexSearch")
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("spoonacular api error: code=%d, message=%s", errCode(apiErr, resp.StatusCode()), apiErr.Message)
	}

	return result.Results, nil
}

// GetRecipeInformation fetches full details, including nutrition, for one recipe.
func (c *APIClient) GetRecipeInformation(ctx context.Context, id int) (*RecipeInformation, error) {
	result := new(RecipeInformation)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apiKey":           c.apiKey,
			"includeNutrition": "true",
		}).
		SetResult(result).
		SetError(apiErr).
		Get(fmt.Sprintf("/recipes/%d/information", id))
	if err != nil {
		return nil, fmt.Errorf("get recipe information: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("spoonacular api error: code=%d, message=%s", errCode(apiErr, resp.StatusCode()), apiErr.Message)
	}

	return result, nil
}

func errCode(apiErr *apiError, httpStatus int) int {
	if apiErr != nil && apiErr.Code != 0 {
		return apiErr.Code
	}
	return httpStatus
}
