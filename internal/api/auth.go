package api

import (
	"context"
	"fmt"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// RegisterRequest mirrors the backend's register binding.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	FullName string `json:"full_name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Location string `json:"location,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/user/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	var out models.User
	if err := c.put(ctx, "/user/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, fmt.Sprintf("/user/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
