package store

import "fintrack/internal/models"

// UploadAvatar stores a blob under its generated filename.
func (g *Gateway) UploadAvatar(avatar *models.Avatar) error {
	return g.db.Create(avatar).Error
}

// RemoveAvatar deletes a stored blob by filename.
func (g *Gateway) RemoveAvatar(name string) error {
	return g.db.Delete(&models.Avatar{}, "name = ?", name).Error
}

// GetAvatar fetches a stored blob by filename.
func (g *Gateway) GetAvatar(name string) (*models.Avatar, error) {
	var avatar models.Avatar
	if err := g.db.First(&avatar, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &avatar, nil
}
