package garage

import (
	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

var allFuels = []vehicle.FuelType{vehicle.FuelGasoline, vehicle.FuelDiesel, vehicle.FuelElectric, vehicle.FuelHybrid}
var combustionFuels = []vehicle.FuelType{vehicle.FuelGasoline, vehicle.FuelDiesel, vehicle.FuelHybrid}

// weekly builds opening hours with one window for Monday to Friday.
func weekly(weekday, saturday, sunday string) Hours {
	return Hours{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    weekday,
		"saturday":  saturday,
		"sunday":    sunday,
	}
}

// SampleCatalog returns the demo issues and the Springfield shops. Each call
// builds fresh values.
func SampleCatalog() ([]Issue, []Shop) {
	issues := []Issue{
		{
			ID:          "1",
			Name:        "Engine Problems",
			Description: "Issues related to engine performance, starting, or unusual noises",
			Symptoms: []string{
				"Engine won't start", "Rough idling", "Loss of power", "Strange engine noises",
				"Check engine light", "Engine overheating", "Poor fuel economy",
			},
			Urgency:                 UrgencyHigh,
			EstimatedCost:           CostRange{Min: 200, Max: 3000},
			EstimatedHours:          4,
			RequiredSpecializations: []string{"Engine Repair", "Diagnostics", "Fuel Systems"},
			CompatibleFuels:         combustionFuels,
		},
		{
			ID:          "2",
			Name:        "Brake System Issues",
			Description: "Problems with braking performance and safety",
			Symptoms: []string{
				"Squeaking or grinding brakes", "Soft brake pedal", "Brake warning light",
				"Vehicle pulls to one side", "Vibration when braking", "Brake fluid leaks",
			},
			Urgency:                 UrgencyCritical,
			EstimatedCost:           CostRange{Min: 150, Max: 800},
			EstimatedHours:          2,
			RequiredSpecializations: []string{"Brake Systems", "Safety Inspections"},
			CompatibleFuels:         allFuels,
		},
		{
			ID:          "3",
			Name:        "Electrical Problems",
			Description: "Issues with electrical systems, battery, or electronics",
			Symptoms: []string{
				"Dead battery", "Dim or flickering lights", "Electrical components not working",
				"Starting problems", "Alternator issues", "Fuse problems",
			},
			Urgency:                 UrgencyMedium,
			EstimatedCost:           CostRange{Min: 100, Max: 1500},
			EstimatedHours:          3,
			RequiredSpecializations: []string{"Electrical Systems", "Diagnostics", "Battery Service"},
			CompatibleFuels:         allFuels,
		},
		{
			ID:          "4",
			Name:        "Transmission Issues",
			Description: "Problems with automatic or manual transmission",
			Symptoms: []string{
				"Slipping gears", "Hard shifting", "Transmission fluid leaks",
				"Burning smell", "Delayed engagement", "Unusual transmission noises",
			},
			Urgency:                 UrgencyHigh,
			EstimatedCost:           CostRange{Min: 500, Max: 4000},
			EstimatedHours:          6,
			RequiredSpecializations: []string{"Transmission Repair", "Fluid Services"},
			CompatibleFuels:         combustionFuels,
		},
		{
			ID:          "5",
			Name:        "Air Conditioning Problems",
			Description: "Issues with heating, ventilation, and air conditioning",
			Symptoms: []string{
				"No cold air", "Weak airflow", "Strange odors",
				"AC compressor noise", "Refrigerant leaks", "Heating not working",
			},
			Urgency:                 UrgencyLow,
			EstimatedCost:           CostRange{Min: 150, Max: 1200},
			EstimatedHours:          2,
			RequiredSpecializations: []string{"HVAC Systems", "Refrigerant Service"},
			CompatibleFuels:         allFuels,
		},
		{
			ID:          "6",
			Name:        "Suspension & Steering",
			Description: "Problems with vehicle handling and ride comfort",
			Symptoms: []string{
				"Rough ride", "Vehicle pulls to one side", "Steering wheel vibration",
				"Unusual tire wear", "Clunking noises over bumps", "Difficulty steering",
			},
			Urgency:                 UrgencyMedium,
			EstimatedCost:           CostRange{Min: 200, Max: 1500},
			EstimatedHours:          3,
			RequiredSpecializations: []string{"Suspension Systems", "Steering Repair", "Alignment"},
			CompatibleFuels:         allFuels,
		},
	}

	mike := Mechanic{
		ID: "1", Name: "Mike Rodriguez",
		Specializations: []string{"Engine Repair", "Diagnostics", "Fuel Systems"},
		ExperienceYears: 15, Rating: 4.8, ReviewCount: 127,
		Certifications: []string{"ASE Master Technician", "Ford Certified"},
		HourlyRate:     95,
		Availability:   weekly("8:00 AM - 6:00 PM", "9:00 AM - 4:00 PM", "Closed"),
	}
	sarah := Mechanic{
		ID: "2", Name: "Sarah Chen",
		Specializations: []string{"Electrical Systems", "Diagnostics", "Battery Service"},
		ExperienceYears: 12, Rating: 4.9, ReviewCount: 89,
		Certifications: []string{"ASE Electrical Specialist", "Tesla Certified"},
		HourlyRate:     105,
		Availability:   weekly("7:00 AM - 5:00 PM", "8:00 AM - 2:00 PM", "Closed"),
	}
	david := Mechanic{
		ID: "3", Name: "David Thompson",
		Specializations: []string{"Brake Systems", "Safety Inspections", "Suspension Systems"},
		ExperienceYears: 20, Rating: 4.7, ReviewCount: 203,
		Certifications: []string{"ASE Brake Specialist", "State Safety Inspector"},
		HourlyRate:     85,
		Availability:   weekly("8:00 AM - 6:00 PM", "9:00 AM - 3:00 PM", "Closed"),
	}
	jennifer := Mechanic{
		ID: "4", Name: "Jennifer Walsh",
		Specializations: []string{"Transmission Repair", "Fluid Services", "Diagnostics"},
		ExperienceYears: 18, Rating: 4.6, ReviewCount: 156,
		Certifications: []string{"ASE Automatic Transmission", "Allison Certified"},
		HourlyRate:     110,
		Availability:   weekly("8:00 AM - 5:00 PM", "Closed", "Closed"),
	}
	carlos := Mechanic{
		ID: "5", Name: "Carlos Martinez",
		Specializations: []string{"HVAC Systems", "Refrigerant Service", "Electrical Systems"},
		ExperienceYears: 10, Rating: 4.5, ReviewCount: 78,
		Certifications: []string{"EPA 609 Certified", "ASE Heating & AC"},
		HourlyRate:     80,
		Availability:   weekly("9:00 AM - 6:00 PM", "10:00 AM - 4:00 PM", "Closed"),
	}

	shops := []Shop{
		{
			ID: "1", Name: "Elite Auto Service Center",
			Address: "1234 Main Street", City: "Springfield", State: "IL", Zip: "62701",
			Phone: "(555) 123-4567", Email: "info@eliteauto.com", Website: "www.eliteauto.com",
			Location: types.Point{Lat: 39.7817, Lng: -89.6501},
			Rating:   4.7, ReviewCount: 342,
			Services:  []string{"Engine Repair", "Brake Systems", "Electrical Systems", "Diagnostics", "Oil Changes"},
			Mechanics: []Mechanic{mike, sarah, david},
			PriceTier: PriceModerate,
			Features:  []string{"24/7 Towing", "Warranty", "Shuttle Service", "Online Booking"},
			Hours:     weekly("7:00 AM - 7:00 PM", "8:00 AM - 5:00 PM", "10:00 AM - 4:00 PM"),
		},
		{
			ID: "2", Name: "Downtown Transmission Specialists",
			Address: "567 Oak Avenue", City: "Springfield", State: "IL", Zip: "62702",
			Phone: "(555) 987-6543", Email: "service@downtowntrans.com",
			Location: types.Point{Lat: 39.7901, Lng: -89.6440},
			Rating:   4.9, ReviewCount: 189,
			Services:  []string{"Transmission Repair", "Fluid Services", "Diagnostics", "Clutch Repair"},
			Mechanics: []Mechanic{jennifer},
			PriceTier: PricePremium,
			Features:  []string{"Specialist Focus", "Warranty", "Free Diagnostics"},
			Hours:     weekly("8:00 AM - 6:00 PM", "9:00 AM - 3:00 PM", "Closed"),
		},
		{
			ID: "3", Name: "Quick Fix Auto Repair",
			Address: "890 Elm Street", City: "Springfield", State: "IL", Zip: "62703",
			Phone: "(555) 456-7890", Email: "info@quickfixauto.com",
			Location: types.Point{Lat: 39.7956, Lng: -89.6621},
			Rating:   4.3, ReviewCount: 267,
			Services:  []string{"Oil Changes", "Brake Systems", "HVAC Systems", "Battery Service", "Tire Service"},
			Mechanics: []Mechanic{david, carlos},
			PriceTier: PriceBudget,
			Features:  []string{"Same Day Service", "No Appointment Needed", "Student Discounts"},
			Hours:     weekly("8:00 AM - 6:00 PM", "9:00 AM - 4:00 PM", "Closed"),
		},
		{
			ID: "4", Name: "Premium European Auto",
			Address: "321 Pine Road", City: "Springfield", State: "IL", Zip: "62704",
			Phone: "(555) 321-0987", Email: "service@premiumeuro.com", Website: "www.premiumeuropeanauto.com",
			Location: types.Point{Lat: 39.7723, Lng: -89.6532},
			Rating:   4.8, ReviewCount: 156,
			Services:  []string{"Engine Repair", "Electrical Systems", "Diagnostics", "Performance Tuning"},
			Mechanics: []Mechanic{mike, sarah},
			PriceTier: PricePremium,
			Features:  []string{"European Specialist", "Loaner Cars", "Warranty", "Concierge Service"},
			Hours:     weekly("8:00 AM - 6:00 PM", "9:00 AM - 2:00 PM", "Closed"),
		},
	}
	return issues, shops
}
