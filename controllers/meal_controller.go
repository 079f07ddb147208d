package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VIJAYRUR/fitfoodie-backend/middlewares"
	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/services"
	"github.com/VIJAYRUR/fitfoodie-backend/utils"
)

type MealController struct {
	meals       *services.MealCatalog
	influencers *services.InfluencerRegistry
	users       *services.UserDirectory
	uploader    *utils.S3Uploader   // optional
	tagger      *utils.TagSuggester // optional
}

func NewMealController(
	meals *services.MealCatalog,
	influencers *services.InfluencerRegistry,
	users *services.UserDirectory,
	uploader *utils.S3Uploader,
	tagger *utils.TagSuggester,
) *MealController {
	return &MealController{
		meals:       meals,
		influencers: influencers,
		users:       users,
		uploader:    uploader,
		tagger:      tagger,
	}
}

func (m *MealController) List(c *gin.Context) {
	in := services.ListMealsInput{
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 10),
		Tag:     c.Query("tag"),
	}
	if raw := c.Query("influencer_id"); raw != "" {
		id, err := models.ParseInfluencerID(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		in.InfluencerID = &id
	}

	result, err := m.meals.List(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meals":        result.Items,
		"total":        result.Total,
		"pages":        result.Pages,
		"current_page": result.CurrentPage,
	})
}

func (m *MealController) GetByID(c *gin.Context) {
	id, err := models.ParseMealID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	meal, err := m.meals.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

type CreateMealRequest struct {
	Title          string           `json:"title" binding:"required"`
	Description    string           `json:"description" binding:"required"`
	ImageURL       string           `json:"image_url"`
	Ingredients    models.JSONField `json:"ingredients"`
	Instructions   string           `json:"instructions"`
	PrepTime       *int             `json:"prep_time"`
	CookTime       *int             `json:"cook_time"`
	Servings       *int             `json:"servings"`
	Calories       *int             `json:"calories"`
	Protein        *float64         `json:"protein"`
	Carbs          *float64         `json:"carbs"`
	Fat            *float64         `json:"fat"`
	Tags           models.TagList   `json:"tags"`
	AffiliateLinks models.JSONField `json:"affiliate_links"`
}

// callerProfile resolves the authenticated user's influencer profile. Meal
// writes are scoped to the caller's own profile, never a profile named in
// the request body.
func (m *MealController) callerProfile(c *gin.Context) (models.InfluencerID, bool) {
	userID, _ := middlewares.CallerID(c)
	profileID, err := m.influencers.ProfileIDForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "only influencers can manage meals"})
		return "", false
	}
	return profileID, true
}

func (m *MealController) Create(c *gin.Context) {
	profileID, ok := m.callerProfile(c)
	if !ok {
		return
	}

	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := m.meals.Create(c.Request.Context(), profileID, services.CreateMealInput{
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Ingredients:    string(req.Ingredients),
		Instructions:   req.Instructions,
		PrepTime:       req.PrepTime,
		CookTime:       req.CookTime,
		Servings:       req.Servings,
		Calories:       req.Calories,
		Protein:        req.Protein,
		Carbs:          req.Carbs,
		Fat:            req.Fat,
		Tags:           req.Tags,
		AffiliateLinks: string(req.AffiliateLinks),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Meal created successfully",
		"meal":    meal,
	})
}

type UpdateMealRequest struct {
	Title          *string           `json:"title"`
	Description    *string           `json:"description"`
	ImageURL       *string           `json:"image_url"`
	Ingredients    *models.JSONField `json:"ingredients"`
	Instructions   *string           `json:"instructions"`
	PrepTime       *int              `json:"prep_time"`
	CookTime       *int              `json:"cook_time"`
	Servings       *int              `json:"servings"`
	Calories       *int              `json:"calories"`
	Protein        *float64          `json:"protein"`
	Carbs          *float64          `json:"carbs"`
	Fat            *float64          `json:"fat"`
	Tags           *models.TagList   `json:"tags"`
	AffiliateLinks *models.JSONField `json:"affiliate_links"`
}

func jsonFieldPtr(f *models.JSONField) *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

func (m *MealController) Update(c *gin.Context) {
	profileID, ok := m.callerProfile(c)
	if !ok {
		return
	}
	id, err := models.ParseMealID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := m.meals.Update(c.Request.Context(), id, models.MealPatch{
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Ingredients:    jsonFieldPtr(req.Ingredients),
		Instructions:   req.Instructions,
		PrepTime:       req.PrepTime,
		CookTime:       req.CookTime,
		Servings:       req.Servings,
		Calories:       req.Calories,
		Protein:        req.Protein,
		Carbs:          req.Carbs,
		Fat:            req.Fat,
		Tags:           (*[]string)(req.Tags),
		AffiliateLinks: jsonFieldPtr(req.AffiliateLinks),
	}, profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Meal updated successfully",
		"meal":    meal,
	})
}

func (m *MealController) Delete(c *gin.Context) {
	profileID, ok := m.callerProfile(c)
	if !ok {
		return
	}
	id, err := models.ParseMealID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := m.meals.Delete(c.Request.Context(), id, profileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted successfully"})
}

func (m *MealController) Favorite(c *gin.Context) {
	m.toggleFavorite(c, true, "Meal favorited successfully")
}

func (m *MealController) Unfavorite(c *gin.Context) {
	m.toggleFavorite(c, false, "Meal unfavorited successfully")
}

func (m *MealController) toggleFavorite(c *gin.Context, add bool, message string) {
	userID, _ := middlewares.CallerID(c)
	id, err := models.ParseMealID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := m.users.ToggleFavorite(c.Request.Context(), userID, id, add); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

type UploadImageRequest struct {
	Image string `json:"image" binding:"required"` // base64 data URI
}

// UploadImage stores a meal photo in S3 and, when label detection is
// configured, suggests tags from the image content.
func (m *MealController) UploadImage(c *gin.Context) {
	if _, ok := m.callerProfile(c); !ok {
		return
	}
	if m.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
		return
	}

	var req UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := m.uploader.UploadBase64Image(c.Request.Context(), req.Image, "meals")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
		return
	}

	resp := gin.H{"image_url": url}
	if m.tagger != nil {
		if tags, err := m.tagger.SuggestTags(c.Request.Context(), req.Image); err == nil {
			resp["suggested_tags"] = tags
		}
	}
	c.JSON(http.StatusOK, resp)
}
