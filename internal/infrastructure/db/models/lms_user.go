package models

type LMSUser struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	Auth         string `gorm:"column:auth;size:20;not null"`
	Confirmed    int    `gorm:"column:confirmed;not null"`
	Deleted      int    `gorm:"column:deleted;not null;default:0"`
	MnetHostID   int64  `gorm:"column:mnethostid;not null"`
	Username     string `gorm:"column:username;size:100;not null;uniqueIndex"`
	Password     string `gorm:"column:password;size:255;not null"`
	IDNumber     string `gorm:"column:idnumber;size:255;not null"`
	FirstName    string `gorm:"column:firstname;size:100;not null"`
	LastName     string `gorm:"column:lastname;size:100;not null"`
	Country      string `gorm:"column:country;size:2;not null"`
	TimeCreated  int64  `gorm:"column:timecreated;not null"`
	TimeModified int64  `gorm:"column:timemodified;not null"`
}
