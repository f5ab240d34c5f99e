package database

import (
	"fmt"
	"log"

	"github.com/campusmatch/college-discovery-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeder loads a small sample catalog for local development. The discovery
// engine never writes; seeding is operator tooling only.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds seeds the catalog in dependency order
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting catalog seeding...")

	if err := s.SeedStreams(); err != nil {
		return fmt.Errorf("failed to seed streams: %w", err)
	}

	if err := s.SeedInterests(); err != nil {
		return fmt.Errorf("failed to seed interests: %w", err)
	}

	if err := s.SeedColleges(); err != nil {
		return fmt.Errorf("failed to seed colleges: %w", err)
	}

	log.Println("Catalog seeding completed successfully!")
	return nil
}

// SeedStreams creates the base academic streams
func (s *Seeder) SeedStreams() error {
	var count int64
	if err := s.db.Model(&model.Stream{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Streams already exist, skipping...")
		return nil
	}

	streams := []model.Stream{
		{Code: "ENG", Name: "Engineering", Description: "B.Tech / B.E. programs across disciplines"},
		{Code: "MED", Name: "Medical", Description: "MBBS, BDS and allied health sciences"},
		{Code: "COM", Name: "Commerce", Description: "B.Com, accounting and business studies"},
		{Code: "FIN", Name: "Finance", Description: "Finance, banking and insurance programs"},
		{Code: "ART", Name: "Arts", Description: "Humanities and liberal arts programs"},
		{Code: "SCI", Name: "Science", Description: "B.Sc programs in pure and applied sciences"},
		{Code: "LAW", Name: "Law", Description: "LLB and integrated law programs"},
		{Code: "MGT", Name: "Management", Description: "BBA and management programs"},
	}

	return s.db.Create(&streams).Error
}

// SeedInterests creates the interest taxonomy entries
func (s *Seeder) SeedInterests() error {
	var count int64
	if err := s.db.Model(&model.Interest{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Interests already exist, skipping...")
		return nil
	}

	interests := []model.Interest{
		{Name: "Cricket", Category: model.InterestCategorySports, Icon: "cricket", Description: "College cricket teams and tournaments"},
		{Name: "Football", Category: model.InterestCategorySports, Icon: "football", Description: "Football clubs and inter-college leagues"},
		{Name: "Debates", Category: model.InterestCategoryAcademic, Icon: "podium", Description: "Debating societies and model UN"},
		{Name: "Music", Category: model.InterestCategoryArts, Icon: "music", Description: "Bands, choirs and cultural fests"},
		{Name: "Theatre", Category: model.InterestCategoryArts, Icon: "theatre", Description: "Dramatics societies"},
		{Name: "Robotics", Category: model.InterestCategoryTechnology, Icon: "robot", Description: "Robotics labs and competitions"},
		{Name: "Coding", Category: model.InterestCategoryTechnology, Icon: "code", Description: "Programming clubs and hackathons"},
		{Name: "Volunteering", Category: model.InterestCategorySocial, Icon: "hands", Description: "NSS and community outreach"},
		{Name: "Photography", Category: model.InterestCategoryClubs, Icon: "camera", Description: "Photography and film clubs"},
		{Name: "Entrepreneurship", Category: model.InterestCategoryProfessional, Icon: "briefcase", Description: "E-cells and startup incubation"},
	}

	return s.db.Create(&interests).Error
}

// SeedColleges creates sample colleges with streams, interests and fees
func (s *Seeder) SeedColleges() error {
	var count int64
	if err := s.db.Model(&model.College{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Colleges already exist, skipping...")
		return nil
	}

	type collegeSeed struct {
		college   model.College
		streams   []string            // stream codes
		interests []string            // interest names
		fees      map[string]float64  // stream code -> annual fee; "" = college-wide
	}

	seeds := []collegeSeed{
		{
			college: model.College{
				Code: "NIT-BPL", Name: "National Institute of Technology Bhopal",
				City: "Bhopal", State: "Madhya Pradesh", Pincode: "462003",
				Type: model.CollegeTypeGovernment, Affiliation: "Autonomous (Institute of National Importance)",
				EstablishedYear: 1960, AverageRating: 4.4,
				Description: "Premier government engineering institute",
				Facilities:  datatypes.JSON([]byte(`["Hostel","Library","Sports Complex","Labs"]`)),
			},
			streams:   []string{"ENG", "SCI"},
			interests: []string{"Robotics", "Coding", "Cricket", "Debates"},
			fees:      map[string]float64{"ENG": 45000, "SCI": 30000},
		},
		{
			college: model.College{
				Code: "SRCC-DEL", Name: "Shri Ram College of Commerce",
				City: "Delhi", State: "Delhi", Pincode: "110007",
				Type: model.CollegeTypeAided, Affiliation: "University of Delhi",
				EstablishedYear: 1926, AverageRating: 4.7,
				Description: "Top-ranked commerce college",
				Facilities:  datatypes.JSON([]byte(`["Library","Auditorium"]`)),
			},
			streams:   []string{"COM", "FIN"},
			interests: []string{"Debates", "Entrepreneurship", "Music"},
			fees:      map[string]float64{"": 28000},
		},
		{
			college: model.College{
				Code: "VIT-VEL", Name: "Vellore Institute of Technology",
				City: "Vellore", State: "Tamil Nadu", Pincode: "632014",
				Type: model.CollegeTypePrivate, Affiliation: "Deemed University",
				EstablishedYear: 1984, AverageRating: 4.2,
				Description: "Large private engineering university",
				Facilities:  datatypes.JSON([]byte(`["Hostel","Labs","Sports Complex","Incubator"]`)),
			},
			streams:   []string{"ENG", "SCI", "MGT"},
			interests: []string{"Coding", "Robotics", "Football", "Entrepreneurship", "Photography"},
			fees:      map[string]float64{"ENG": 198000, "SCI": 120000, "MGT": 150000},
		},
		{
			college: model.College{
				Code: "STX-MUM", Name: "St. Xavier's College Mumbai",
				City: "Mumbai", State: "Maharashtra", Pincode: "400001",
				Type: model.CollegeTypeAutonomous, Affiliation: "University of Mumbai",
				EstablishedYear: 1869, AverageRating: 4.5,
				Description: "Historic autonomous arts and science college",
			},
			streams:   []string{"ART", "SCI", "COM"},
			interests: []string{"Theatre", "Music", "Debates", "Photography", "Volunteering"},
			fees:      map[string]float64{"ART": 12000, "SCI": 18000, "COM": 15000},
		},
		{
			college: model.College{
				Code: "GLC-MUM", Name: "Government Law College Mumbai",
				City: "Mumbai", State: "Maharashtra", Pincode: "400020",
				Type: model.CollegeTypeGovernment, Affiliation: "University of Mumbai",
				EstablishedYear: 1855, AverageRating: 4.1,
				Description: "Oldest law school in Asia",
			},
			streams:   []string{"LAW"},
			interests: []string{"Debates", "Volunteering"},
			fees:      map[string]float64{"LAW": 9000},
		},
		{
			college: model.College{
				Code: "CHR-BLR", Name: "Christ University",
				City: "Bengaluru", State: "Karnataka", Pincode: "560029",
				Type: model.CollegeTypePrivate, Affiliation: "Deemed University",
				EstablishedYear: 1969, AverageRating: 4.3,
				Description: "Multi-disciplinary private university",
			},
			streams:   []string{"COM", "MGT", "ART", "LAW"},
			interests: []string{"Music", "Football", "Entrepreneurship", "Volunteering"},
			fees:      map[string]float64{"COM": 65000, "MGT": 95000, "ART": 55000, "LAW": 130000},
		},
		{
			college: model.College{
				Code: "AFM-PUN", Name: "Armed Forces Medical College",
				City: "Pune", State: "Maharashtra", Pincode: "411040",
				Type: model.CollegeTypeGovernment, Affiliation: "Maharashtra University of Health Sciences",
				EstablishedYear: 1948, AverageRating: 4.8,
				Description: "Premier medical college",
			},
			streams:   []string{"MED"},
			interests: []string{"Cricket", "Volunteering"},
			// No fee record on purpose: exercises the unpriced-college policy
			fees: map[string]float64{},
		},
		{
			college: model.College{
				Code: "LPU-JAL", Name: "Lovely Professional University",
				City: "Jalandhar", State: "Punjab", Pincode: "144411",
				Type: model.CollegeTypePrivate, Affiliation: "UGC Recognized",
				EstablishedYear: 2005, AverageRating: 3.9,
				Description: "Large multi-stream private university",
			},
			streams:   []string{"ENG", "MGT", "ART", "SCI", "COM"},
			interests: []string{"Football", "Cricket", "Coding", "Music", "Photography"},
			fees:      map[string]float64{"ENG": 160000, "MGT": 140000, "ART": 80000, "SCI": 90000, "COM": 85000},
		},
	}

	streamsByCode := map[string]model.Stream{}
	var streams []model.Stream
	if err := s.db.Find(&streams).Error; err != nil {
		return err
	}
	for _, st := range streams {
		streamsByCode[st.Code] = st
	}

	interestsByName := map[string]model.Interest{}
	var interests []model.Interest
	if err := s.db.Find(&interests).Error; err != nil {
		return err
	}
	for _, in := range interests {
		interestsByName[in.Name] = in
	}

	for _, seed := range seeds {
		college := seed.college
		if err := s.db.Create(&college).Error; err != nil {
			return fmt.Errorf("failed to create college %s: %w", college.Code, err)
		}

		for _, code := range seed.streams {
			stream, ok := streamsByCode[code]
			if !ok {
				return fmt.Errorf("unknown stream code %q in seed data", code)
			}
			link := model.CollegeStream{CollegeID: college.ID, StreamID: stream.ID}
			if err := s.db.Create(&link).Error; err != nil {
				return err
			}
		}

		for _, name := range seed.interests {
			interest, ok := interestsByName[name]
			if !ok {
				return fmt.Errorf("unknown interest %q in seed data", name)
			}
			link := model.CollegeInterest{CollegeID: college.ID, InterestID: interest.ID}
			if err := s.db.Create(&link).Error; err != nil {
				return err
			}
		}

		for code, amount := range seed.fees {
			fee := model.AnnualFee{CollegeID: college.ID, Amount: amount}
			if code != "" {
				stream, ok := streamsByCode[code]
				if !ok {
					return fmt.Errorf("unknown stream code %q in fee seed", code)
				}
				streamID := stream.ID
				fee.StreamID = &streamID
			}
			if err := s.db.Create(&fee).Error; err != nil {
				return err
			}
		}

		log.Printf("Seeded college %s (%s)", college.Name, college.Code)
	}

	return nil
}
