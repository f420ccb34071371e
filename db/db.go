package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ecotrackhq/ecotrack/config"
	"github.com/ecotrackhq/ecotrack/models"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the repos rely on.
	gormConfig := &gorm.Config{TranslateError: true}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: uuid.New(), Name: models.RoleAdmin},
		{ID: uuid.New(), Name: models.RoleSuperAdmin},
		{ID: uuid.New(), Name: models.RoleUser},
	}

	for _, role := range roles {
		if err := db.FirstOrCreate(&role, models.Role{Name: role.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func SeedIssueTypes(db *gorm.DB) error {
	issueTypes := []models.IssueType{
		{Name: "Illegal Dumping", Category: "Waste"},
		{Name: "Water Pollution", Category: "Water"},
		{Name: "Air Pollution", Category: "Air"},
		{Name: "Deforestation", Category: "Land"},
		{Name: "Oil Spill", Category: "Water"},
		{Name: "Noise Pollution", Category: "Air"},
		{Name: "Flooding", Category: "Water"},
		{Name: "Erosion", Category: "Land"},
	}

	for _, issueType := range issueTypes {
		if err := db.FirstOrCreate(&issueType, models.IssueType{Name: issueType.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func SeedOrganizations(db *gorm.DB) error {
	organizations := []models.Organization{
		{Name: "Environmental Protection Agency", Email: "contact@epa.example.org"},
		{Name: "State Waste Management Authority", Email: "info@waste.example.org"},
		{Name: "Water Resources Commission", Email: "desk@water.example.org"},
	}

	for _, org := range organizations {
		if err := db.FirstOrCreate(&org, models.Organization{Name: org.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Blacklist{},
		&models.IssueType{},
		&models.Organization{},
		&models.Report{},
		&models.ReportImage{},
		&models.Vote{},
		&models.Comment{},
		&models.Assignment{},
		&models.Notification{},
		&models.AuditEntry{},
		&models.ActivityEntry{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedRoles(db); err != nil {
		return fmt.Errorf("seeding roles error: %v", err)
	}

	if err := SeedIssueTypes(db); err != nil {
		return fmt.Errorf("seeding issue types error: %v", err)
	}

	if err := SeedOrganizations(db); err != nil {
		return fmt.Errorf("seeding organizations error: %v", err)
	}

	return nil
}
