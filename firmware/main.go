//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"machine"
	"time"
)

var (
	adcPressure machine.ADC
	uart        = machine.UART0

	// ADC averaging - running sum and count
	pressureSum   uint32
	pressureCount int // Current count of samples (resets after N samples)

	// Timing
	lastADCRead time.Time
)

func main() {
	// Configure ADC pin and set up ADC with highest resolution
	PIN_PRESSURE_ADC.Configure(machine.PinConfig{Mode: machine.PinInput})

	adcPressure = machine.ADC{Pin: PIN_PRESSURE_ADC}
	adcPressure.Configure(machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	})

	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	lastADCRead = time.Now()

	for {
		now := time.Now()

		if now.Sub(lastADCRead) >= time.Duration(SAMPLE_INTERVAL_MS)*time.Millisecond {
			readPressureADC()
			lastADCRead = now
		}

		if pressureCount >= NUM_SAMPLES {
			outputAveragedPressure()
			pressureSum = 0
			pressureCount = 0
		}

		// Small delay to prevent tight loop (but still allow precise timing)
		time.Sleep(100 * time.Microsecond)
	}
}

func readPressureADC() {
	// machine.ADC.Get is always scaled to 16 bits
	value := adcPressure.Get() >> (16 - ADC_RESOLUTION)
	pressureSum += uint32(value)
	pressureCount++
}

// outputAveragedPressure prints one line: "unix_millis,pressure_hpa,accuracy\n"
// Example: "1700000000123,1013.25,3\n"
func outputAveragedPressure() {
	n := pressureCount
	if n == 0 {
		n = 1 // Avoid division by zero
	}
	raw := pressureSum / uint32(n)

	hpa, accuracy := transducerToHPa(raw)
	centiHPa := int32(hpa * 100)

	print(time.Now().UnixMilli())
	print(",")
	print(centiHPa / 100)
	print(".")
	frac := centiHPa % 100
	if frac < 10 {
		print("0")
	}
	print(frac)
	print(",")
	print(accuracy)
	print("\n")
}

// transducerToHPa converts an averaged ADC reading of a ratiometric absolute pressure
// transducer into hPa. Readings outside the transducer span are clipped and reported
// with low accuracy.
func transducerToHPa(raw uint32) (float32, uint8) {
	mv := float32(raw) * ADC_REFERENCE_MV / float32(uint32(1)<<ADC_RESOLUTION)
	// Divider scales the 5V transducer output into the ADC range
	vout := mv * DIVIDER_RATIO / 1000
	kpa := (vout/SUPPLY_V + TRANSFER_OFFSET) / TRANSFER_SLOPE

	accuracy := uint8(ACCURACY_OK)
	if kpa < SPAN_MIN_KPA {
		kpa = SPAN_MIN_KPA
		accuracy = ACCURACY_CLIPPED
	}
	if kpa > SPAN_MAX_KPA {
		kpa = SPAN_MAX_KPA
		accuracy = ACCURACY_CLIPPED
	}
	return kpa * 10, accuracy
}
