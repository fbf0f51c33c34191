package registry

func builtin() Document {
	return Document{
		WaterParameters: []WaterParameter{
			{Name: "ph", Min: 6.5, Max: 8.5, Mean: 7.2, StdDev: 0.3},
			{Name: "turbidity_ntu", Min: 0, Max: 4.0, Mean: 1.5, StdDev: 0.8, Absolute: true},
			{Name: "tds_ppm", Min: 0, Max: 500, Mean: 280, StdDev: 60},
			{Name: "chlorine_ppm", Min: 0.2, Max: 1.0, Mean: 0.5, StdDev: 0.15},
			{Name: "flow_rate_lpm", Min: 10, Max: 500, Mean: 120, StdDev: 25},
			{Name: "pressure_bar", Min: 1.0, Max: 4.5, Mean: 2.8, StdDev: 0.4},
			{Name: "temperature_c", Min: 5, Max: 30, Mean: 22, StdDev: 2.5},
		},
		WaterZones: []WaterZone{
			{ID: "Z1", Name: "Academic Block Water Supply", Lat: 28.6145, Lon: 77.2095},
			{ID: "Z2", Name: "Hostel Water Supply", Lat: 28.6150, Lon: 77.2105},
			{ID: "Z3", Name: "Sports Complex Supply", Lat: 28.6135, Lon: 77.2082},
			{ID: "Z4", Name: "Campus Irrigation Network", Lat: 28.6138, Lon: 77.2098, Degraded: true},
			{ID: "Z5", Name: "Grey Water Recycling Loop", Lat: 28.6152, Lon: 77.2090, Degraded: true},
		},
		FootfallZones: []FootfallZone{
			{ID: "main_gate", Name: "Main Gate Entrance", CapacityPPH: 800, Lat: 28.6140, Lon: 77.2090,
				Shared: true, ConflictType: "Mixed pedestrian-vehicle at intersection"},
			{ID: "academic_block", Name: "Academic Block Corridor", CapacityPPH: 1200, Lat: 28.6145, Lon: 77.2095},
			{ID: "cafeteria", Name: "Cafeteria Junction", CapacityPPH: 600, Lat: 28.6142, Lon: 77.2088},
			{ID: "library", Name: "Library Entrance", CapacityPPH: 400, Lat: 28.6148, Lon: 77.2100},
			{ID: "sports_complex", Name: "Sports Complex Access Road", CapacityPPH: 500, Lat: 28.6135, Lon: 77.2082,
				Shared: true, ConflictType: "Pedestrians crossing vehicle lane"},
			{ID: "hostel_road", Name: "Hostel Access Road (Shared)", CapacityPPH: 350, Lat: 28.6150, Lon: 77.2105,
				Shared: true, ConflictType: "Delivery vehicle blocking pedestrian path"},
		},
		ParkingLots: []ParkingLot{
			{ID: "P1", Name: "Main Gate Lot", Capacity: 500, Lat: 28.614, Lon: 77.209},
			{ID: "P2", Name: "Academic Block Lot", Capacity: 300, Lat: 28.615, Lon: 77.210},
			{ID: "P3", Name: "Sports Complex Lot", Capacity: 200, Lat: 28.613, Lon: 77.208},
			{ID: "P4", Name: "Staff Quarters Lot", Capacity: 150, Lat: 28.616, Lon: 77.211},
		},
		WasteAreas: []WasteArea{
			{ID: "cafeteria", Name: "Cafeteria", DailyKG: 250, BiodegradableFraction: 0.78},
			{ID: "hostels", Name: "Hostels", DailyKG: 180, BiodegradableFraction: 0.65},
			{ID: "academic_block", Name: "Academic Block", DailyKG: 40, BiodegradableFraction: 0.45},
			{ID: "sports_complex", Name: "Sports Complex", DailyKG: 30, BiodegradableFraction: 0.55},
			{ID: "campus_wide", Name: "Campus Wide", DailyKG: 600, BiodegradableFraction: 0.68},
		},
		DefaultWasteArea: "campus_wide",
		Plants: []Plant{
			{
				ID: "neem", Name: "Neem (Azadirachta indica)", Type: "tree",
				PH: Range{6.0, 8.5}, Moisture: Range{30, 70}, Nitrogen: Range{10, 80},
				CO2KgPerYear: 22, WaterRequirement: "Low", GrowthRate: "Medium", CanopyRadiusM: 8,
				Benefits: []string{"Air purification", "Shade", "Natural pesticide", "Medicinal"},
			},
			{
				ID: "peepal", Name: "Peepal (Ficus religiosa)", Type: "tree",
				PH: Range{5.5, 8.0}, Moisture: Range{40, 80}, Nitrogen: Range{20, 100},
				CO2KgPerYear: 28, WaterRequirement: "Medium", GrowthRate: "Fast", CanopyRadiusM: 10,
				Benefits: []string{"High oxygen output", "Air purification", "Biodiversity support"},
			},
			{
				ID: "bamboo", Name: "Golden Bamboo (Phyllostachys aurea)", Type: "grass/screen",
				PH: Range{5.5, 7.5}, Moisture: Range{50, 90}, Nitrogen: Range{30, 120},
				CO2KgPerYear: 35, WaterRequirement: "Medium", GrowthRate: "Very Fast", CanopyRadiusM: 2,
				Benefits: []string{"Fast carbon sequestration", "Privacy screen", "Erosion control"},
			},
			{
				ID: "ashoka", Name: "Ashoka (Saraca asoca)", Type: "tree",
				PH: Range{6.0, 7.5}, Moisture: Range{60, 85}, Nitrogen: Range{40, 100},
				CO2KgPerYear: 18, WaterRequirement: "Medium", GrowthRate: "Slow", CanopyRadiusM: 5,
				Benefits: []string{"Ornamental", "Shade", "Biodiversity", "Avenue planting"},
			},
			{
				ID: "bougainvillea", Name: "Bougainvillea", Type: "climber/shrub",
				PH: Range{5.5, 7.0}, Moisture: Range{25, 60}, Nitrogen: Range{10, 60},
				CO2KgPerYear: 5, WaterRequirement: "Very Low", GrowthRate: "Fast", CanopyRadiusM: 3,
				Benefits: []string{"Low maintenance", "Erosion control", "Ornamental", "Wall cover"},
			},
			{
				ID: "tulsi", Name: "Holy Basil / Tulsi (Ocimum tenuiflorum)", Type: "herb",
				PH: Range{6.0, 7.5}, Moisture: Range{40, 70}, Nitrogen: Range{20, 80},
				CO2KgPerYear: 1, WaterRequirement: "Low", GrowthRate: "Fast", CanopyRadiusM: 0.5,
				Benefits: []string{"Air purification", "Medicinal", "Repels insects", "Community value"},
			},
			{
				ID: "areca_palm", Name: "Areca Palm (Dypsis lutescens)", Type: "palm",
				PH: Range{6.0, 7.0}, Moisture: Range{55, 85}, Nitrogen: Range{30, 90},
				CO2KgPerYear: 6, WaterRequirement: "Medium", GrowthRate: "Medium", CanopyRadiusM: 2,
				Benefits: []string{"Air purification (NASA list)", "Humidity regulation", "Indoor/outdoor"},
			},
		},
		SpaceTypes: []string{"classroom", "lab", "parking", "sports", "library", "cafeteria"},
	}
}
