package models

import "time"

const DefaultTaskStatus = "pending"

type Task struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description *string   `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(50);not null;default:pending"`
	CreatedAt   time.Time `gorm:"not null"`
	EmployeeID  *uint     `gorm:"index"`
}
