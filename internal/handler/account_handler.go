package handler

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/foresight/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// avatar uploads are downscaled to fit this edge length
const maxAvatarEdge = 256

// ShowAccount renders the account page. The route is auth-gated; a
// nil profile here is the transient "still provisioning" state and
// the template shows a loading notice instead of the form.
func (a *API) ShowAccount(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "account.html", gin.H{
		"title": "My Account",
	})
}

type profileUpdatePayload struct {
	DisplayName *string `json:"display_name"`
}

// UpdateAccountProfile 只允许更新展示名称，其余字段由服务端维护。
func (a *API) UpdateAccountProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "sign in required")
		return
	}

	var payload profileUpdatePayload
	if !bindJSON(c, &payload, "invalid profile payload") {
		return
	}

	profile, err := a.accounts.UpdateProfile(user.ID, service.ProfileUpdateInput{
		DisplayName: payload.DisplayName,
	})
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondError(c, http.StatusNotFound, "profile not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profileView(profile),
	})
}

// UploadAvatar 接收头像图片，压缩后保存并更新资料中的头像链接。
func (a *API) UploadAvatar(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "sign in required")
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No avatar image provided")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read uploaded image")
		return
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unsupported image format")
		return
	}

	img = scaleDown(img, maxAvatarEdge)

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to store avatar")
		return
	}

	name := fmt.Sprintf("avatar-%s.png", uuid.New().String())
	path := filepath.Join(a.uploadDir, name)

	out, err := os.Create(path)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to store avatar")
		return
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to store avatar")
		return
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(a.uploadURL, "/"), name)
	profile, err := a.accounts.UpdateProfile(user.ID, service.ProfileUpdateInput{
		AvatarURL: &url,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar updated",
		"url":     url,
		"profile": profileView(profile),
	})
}

func scaleDown(src image.Image, maxEdge int) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxEdge && height <= maxEdge {
		return src
	}

	scale := float64(maxEdge) / float64(width)
	if height > width {
		scale = float64(maxEdge) / float64(height)
	}

	dstWidth := int(float64(width) * scale)
	dstHeight := int(float64(height) * scale)
	if dstWidth < 1 {
		dstWidth = 1
	}
	if dstHeight < 1 {
		dstHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
