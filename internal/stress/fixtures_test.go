package stress

func vegetativeOptimal() Snapshot {
	return Snapshot{
		Environment: EnvironmentalReading{
			PPFD:             450,
			DLI:              30,
			PhotoperiodHours: 18,
			Spectrum:         Spectrum{Red: 60, Blue: 20, FarRed: 10, UV: 5},
			VPD:              1.0,
			AirTemp:          25,
			LeafTemp:         23,
			CO2:              800,
			RelativeHumidity: 60,
		},
		Nutrients: NutrientReading{
			EC: 1.6,
			PH: 6.0,
			NutrientLevels: NutrientLevels{
				Nitrogen: 225, Phosphorus: 70, Potassium: 250,
				Calcium: 185, Magnesium: 70, Sulfur: 100,
			},
		},
		Plant: PlantState{
			Stage:               Vegetative,
			Chlorophyll:         40,
			PhotosynthesisRate:  20,
			StomatalConductance: 300,
			SapFlow:             50,
			LeafWaterPotential:  -0.5,
		},
	}
}

func floweringStressed() Snapshot {
	return Snapshot{
		Environment: EnvironmentalReading{
			PPFD:             1500,
			DLI:              65,
			PhotoperiodHours: 12,
			Spectrum:         Spectrum{Red: 70, Blue: 14, FarRed: 10, UV: 5},
			VPD:              2.4,
			AirTemp:          29,
			LeafTemp:         30,
			CO2:              1200,
			RelativeHumidity: 40,
		},
		Nutrients: NutrientReading{
			EC: 3.5,
			PH: 7.2,
			NutrientLevels: NutrientLevels{
				Nitrogen: 40, Phosphorus: 30, Potassium: 500,
				Calcium: 185, Magnesium: 75, Sulfur: 105,
			},
		},
		Plant: PlantState{
			Stage:               Flowering,
			Chlorophyll:         30,
			PhotosynthesisRate:  12,
			StomatalConductance: 80,
			SapFlow:             60,
			LeafWaterPotential:  -3.0,
		},
	}
}
