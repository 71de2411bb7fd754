package store

import "fintrack/internal/models"

// GetUserByID fetches an identity record by id.
func (g *Gateway) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := g.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches an identity record by email.
func (g *Gateway) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := g.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new identity record.
func (g *Gateway) CreateUser(user *models.User) error {
	return g.db.Create(user).Error
}

// UpdateUserAttributes updates attributes on the identity record.
func (g *Gateway) UpdateUserAttributes(id string, attrs map[string]any) error {
	return g.db.Model(&models.User{}).Where("id = ?", id).Updates(attrs).Error
}
