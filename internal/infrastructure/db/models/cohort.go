package models

type Cohort struct {
	ID                int64  `gorm:"column:id;primaryKey"`
	ContextID         int64  `gorm:"column:contextid;not null"`
	Name              string `gorm:"column:name;size:254;not null"`
	IDNumber          string `gorm:"column:idnumber;size:100;index"`
	Description       string `gorm:"column:description;type:text"`
	DescriptionFormat int    `gorm:"column:descriptionformat;not null"`
	Visible           int    `gorm:"column:visible;not null;default:1"`
	Component         string `gorm:"column:component;size:100;not null"`
	TimeCreated       int64  `gorm:"column:timecreated;not null"`
	TimeModified      int64  `gorm:"column:timemodified;not null"`
}

type CohortMember struct {
	ID        int64 `gorm:"column:id;primaryKey"`
	CohortID  int64 `gorm:"column:cohortid;not null;uniqueIndex:cohort_user"`
	UserID    int64 `gorm:"column:userid;not null;uniqueIndex:cohort_user"`
	TimeAdded int64 `gorm:"column:timeadded;not null"`
}
