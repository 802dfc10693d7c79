// Package models holds the row types for every table in schema.sql plus
// the result types exchanged between the service layer and the UI.
package models

type Account struct {
	AccountID    int64
	Email        string
	PasswordHash string
	CreatedAt    string
}

type Profile struct {
	AccountID   int64
	DisplayName string
}

type PlayerBio struct {
	PlayerID  int64
	FullName  string
	Age       string // raw source value, may be empty
	Position  string
	SalaryUSD int64
}

type Season struct {
	SeasonID int64
	Label    string
}

type AdvancedStatType struct {
	StatID       int64
	Name         string
	Abbreviation string
}

type PlayerAdvancedStatFact struct {
	PlayerID int64
	SeasonID int64
	StatID   int64
	Value    float64
}

type InjuryReport struct {
	ReportID       int64
	PlayerID       int64
	InjuryDate     string // ISO yyyy-mm-dd
	Summary        string
	Notes          string
	SourceCitation string
}

type City struct {
	CityID        int64
	Name          string
	StateProvince string
	Country       string
}

type CityDemographics struct {
	CityID                int64
	Population            int64
	MedianHouseholdIncome int64
	PovertyRate           float64
}

type Prediction struct {
	PredictionID int64
	AccountID    int64
	PlayerID     int64
	Type         string
	Value        string
	Date         string
}
