package auth

// Swagger API metadata is defined globally in cmd/api/main.go

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/features/media"
	"github.com/xyz-asif/safetrip/internal/pkg/response"
)

const profilePhotoFolder = "profiles"

type Handler struct {
	service *Service
	store   media.Store
}

func NewHandler(service *Service, store media.Store) *Handler {
	return &Handler{service: service, store: store}
}

// SignUp godoc
// @Summary Sign up with email
// @Description Create an account with the identity provider and a matching profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Sign-up data"
// @Success 201 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /auth/signup [post]
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	resp, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, resp)
}

// Login godoc
// @Summary Sign in with email
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	resp, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, resp)
}

// GoogleLogin godoc
// @Summary Sign in with Google
// @Description Authenticate with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google ID token"
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/google [post]
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	resp, err := h.service.SignInWithGoogle(c.Request.Context(), req.GoogleIDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, resp)
}

// ExchangeSession godoc
// @Summary Exchange an identity provider token
// @Description Trade a Firebase ID token obtained client-side for an API access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SessionRequest true "Firebase ID token"
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/session [post]
func (h *Handler) ExchangeSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	resp, err := h.service.ExchangeIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, resp)
}

// Logout godoc
// @Summary Sign out
// @Description Revoke the caller's identity provider sessions
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context(), SessionFrom(c)); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Signed out"})
}

// PasswordReset godoc
// @Summary Send a password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Account email"
// @Success 200 {object} response.SuccessResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /auth/password-reset [post]
func (h *Handler) PasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := h.service.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Password reset email sent"})
}

// GetOwnProfile godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=Profile}
// @Failure 401 {object} response.ErrorResponse
// @Router /users/me [get]
func (h *Handler) GetOwnProfile(c *gin.Context) {
	session := SessionFrom(c)
	state, err := session.Wait(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	if state.Err != nil {
		response.FromError(c, state.Err)
		return
	}
	if state.Profile == nil {
		response.AuthenticationError(c, "Please log in to continue")
		return
	}

	response.Success(c, state.Profile)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Only the fields present in the body are changed
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileUpdate true "Fields to change"
// @Success 200 {object} response.SuccessResponse{data=Profile}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /users/me [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var upd ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BindJSONError(c, err)
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), SessionFrom(c), upd)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, profile)
}

// UploadProfilePicture godoc
// @Summary Upload a profile picture
// @Description Stores the image, sets it as the profile photo and deletes the photo it replaces
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 200 {object} response.SuccessResponse{data=Profile}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /users/me/photo [post]
func (h *Handler) UploadProfilePicture(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}

	session := SessionFrom(c)
	upload, err := media.UploadImage(c.Request.Context(), h.store, profilePhotoFolder+"/"+session.UID(), header)
	if err != nil {
		response.FromError(c, err)
		return
	}

	profile, err := h.service.ReplaceProfilePhoto(c.Request.Context(), session, h.store, upload)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, profile)
}

// GetPublicProfile godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) GetPublicProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, profile.ToPublicProfile())
}
