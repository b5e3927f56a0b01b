package models

type Employee struct {
	ID        uint    `gorm:"primaryKey"`
	FirstName string  `gorm:"type:varchar(100);not null"`
	LastName  string  `gorm:"type:varchar(100);not null"`
	Email     string  `gorm:"type:varchar(200);not null;uniqueIndex"`
	Position  *string `gorm:"type:varchar(100)"`
	Tasks     []Task  `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
}
