package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VIJAYRUR/fitfoodie-backend/middlewares"
	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/services"
)

type InfluencerController struct {
	influencers *services.InfluencerRegistry
	users       *services.UserDirectory
}

func NewInfluencerController(influencers *services.InfluencerRegistry, users *services.UserDirectory) *InfluencerController {
	return &InfluencerController{influencers: influencers, users: users}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (i *InfluencerController) List(c *gin.Context) {
	result, err := i.influencers.List(c.Request.Context(), services.ListInfluencersInput{
		Page:      queryInt(c, "page", 1),
		PerPage:   queryInt(c, "per_page", 10),
		Specialty: c.Query("specialty"),
		SortBy:    c.DefaultQuery("sort_by", services.SortNewest),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"influencers":  result.Items,
		"total":        result.Total,
		"pages":        result.Pages,
		"current_page": result.CurrentPage,
	})
}

func (i *InfluencerController) GetByID(c *gin.Context) {
	id, err := models.ParseInfluencerID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	inf, err := i.influencers.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inf)
}

func (i *InfluencerController) Specialties(c *gin.Context) {
	specialties, err := i.influencers.Specialties(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"specialties": specialties})
}

// MyProfile returns the authenticated user's own influencer profile.
func (i *InfluencerController) MyProfile(c *gin.Context) {
	userID, _ := middlewares.CallerID(c)
	inf, err := i.influencers.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inf)
}

type CreateInfluencerRequest struct {
	Specialty        string           `json:"specialty"`
	SocialMediaLinks models.JSONField `json:"social_media_links"`
}

func (i *InfluencerController) CreateProfile(c *gin.Context) {
	userID, _ := middlewares.CallerID(c)

	var req CreateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inf, err := i.influencers.CreateProfile(c.Request.Context(), userID, req.Specialty, string(req.SocialMediaLinks))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Influencer profile created successfully",
		"influencer": inf,
	})
}

// UpdateInfluencerRequest carries the owner-editable profile fields.
// Verification is granted out of band, never by the profile owner.
type UpdateInfluencerRequest struct {
	Specialty        *string           `json:"specialty"`
	SocialMediaLinks *models.JSONField `json:"social_media_links"`
}

func (i *InfluencerController) UpdateProfile(c *gin.Context) {
	userID, _ := middlewares.CallerID(c)

	var req UpdateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.InfluencerPatch{
		Specialty: req.Specialty,
	}
	if req.SocialMediaLinks != nil {
		links := string(*req.SocialMediaLinks)
		patch.SocialMediaLinks = &links
	}

	inf, err := i.influencers.UpdateProfile(c.Request.Context(), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Influencer profile updated successfully",
		"influencer": inf,
	})
}

func (i *InfluencerController) Follow(c *gin.Context) {
	i.toggleFollow(c, true, "Influencer followed successfully")
}

func (i *InfluencerController) Unfollow(c *gin.Context) {
	i.toggleFollow(c, false, "Influencer unfollowed successfully")
}

func (i *InfluencerController) toggleFollow(c *gin.Context, add bool, message string) {
	userID, _ := middlewares.CallerID(c)

	id, err := models.ParseInfluencerID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := i.users.ToggleFollow(c.Request.Context(), userID, id, add); err != nil {
		respondError(c, err)
		return
	}
	count, err := i.influencers.FollowerCount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         message,
		"followers_count": count,
	})
}

func (i *InfluencerController) Followers(c *gin.Context) {
	id, err := models.ParseInfluencerID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	followers, err := i.influencers.Followers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": followers})
}
