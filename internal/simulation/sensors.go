package simulation

import (
	"fmt"
	"math"

	"pinboard/internal/domain"
)

// Reading is one mock sensor sample
type Reading struct {
	ComponentID string               `json:"component_id"`
	Type        domain.ComponentType `json:"type"`
	Values      map[string]float64   `json:"values"`
	// Serial is the line written to the serial log
	Serial string `json:"serial"`
	// Lines is what a display shows for this reading
	Lines []string `json:"lines"`
}

// sensorModel produces a reading from simulated time in seconds
type sensorModel func(t float64) Reading

// Models are smooth periodic placeholders, not physical simulations.
var sensorModels = map[domain.ComponentType]sensorModel{
	domain.TypeMPU6050:        mpu6050,
	domain.TypeDHT22:          dht22,
	domain.TypeHCSR04:         ultrasonic,
	domain.TypeNTCTemperature: thermistor,
	domain.TypePhotoresistor:  photoresistor,
	domain.TypeGasSensor:      gasSensor,
}

// HasModel reports whether components of type t produce readings
func HasModel(t domain.ComponentType) bool {
	_, ok := sensorModels[t]
	return ok
}

func mpu6050(t float64) Reading {
	ax := math.Round(math.Sin(t) * 16000)
	ay := math.Round(math.Cos(t*0.5) * 16000)
	az := math.Round(math.Sin(t*0.2) * 16000)
	return Reading{
		Values: map[string]float64{"ax": ax, "ay": ay, "az": az},
		Serial: fmt.Sprintf("MPU6050: AX=%d AY=%d AZ=%d", int(ax), int(ay), int(az)),
		Lines: []string{
			"MPU6050 Data",
			fmt.Sprintf("AX: %d", int(ax)),
			fmt.Sprintf("AY: %d", int(ay)),
			fmt.Sprintf("AZ: %d", int(az)),
		},
	}
}

func dht22(t float64) Reading {
	temp := round1(24 + math.Sin(t*0.3)*3)
	hum := round1(50 + math.Cos(t*0.2)*10)
	return Reading{
		Values: map[string]float64{"temperature": temp, "humidity": hum},
		Serial: fmt.Sprintf("DHT22: T=%.1fC H=%.1f%%", temp, hum),
		Lines: []string{
			"DHT22",
			fmt.Sprintf("Temp: %.1f C", temp),
			fmt.Sprintf("Hum: %.1f %%", hum),
		},
	}
}

func ultrasonic(t float64) Reading {
	dist := math.Round(100 + math.Sin(t*0.5)*80)
	return Reading{
		Values: map[string]float64{"distance_cm": dist},
		Serial: fmt.Sprintf("Distance: %d cm", int(dist)),
		Lines: []string{
			"Ultrasonic",
			fmt.Sprintf("Dist: %d cm", int(dist)),
		},
	}
}

func thermistor(t float64) Reading {
	temp := round1(22 + math.Sin(t*0.1)*5)
	return Reading{
		Values: map[string]float64{"temperature": temp},
		Serial: fmt.Sprintf("NTC: T=%.1fC", temp),
		Lines:  []string{"NTC", fmt.Sprintf("Temp: %.1f C", temp)},
	}
}

func photoresistor(t float64) Reading {
	level := math.Round(512 + math.Sin(t*0.4)*400)
	return Reading{
		Values: map[string]float64{"level": level},
		Serial: fmt.Sprintf("LDR: %d", int(level)),
		Lines:  []string{"Light", fmt.Sprintf("Level: %d", int(level))},
	}
}

func gasSensor(t float64) Reading {
	ppm := math.Round(300 + math.Abs(math.Sin(t*0.15))*200)
	return Reading{
		Values: map[string]float64{"ppm": ppm},
		Serial: fmt.Sprintf("Gas: %d ppm", int(ppm)),
		Lines:  []string{"Gas", fmt.Sprintf("Level: %d ppm", int(ppm))},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
