//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_MS = 1   // ADC read interval in milliseconds
	NUM_SAMPLES        = 100 // Number of samples to average, one line every ~100ms

	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // ADC resolution in bits (12-bit = 0-4095)

	// Absolute pressure transducer, Vout = Vs * (TRANSFER_SLOPE * P_kPa - TRANSFER_OFFSET)
	SUPPLY_V        = 5.0
	TRANSFER_SLOPE  = 0.009
	TRANSFER_OFFSET = 0.095
	SPAN_MIN_KPA    = 15
	SPAN_MAX_KPA    = 115
	DIVIDER_RATIO   = 2.0 // 10k/10k divider between transducer output and ADC pin

	// Accuracy reported on each line, see sensor.Accuracy on the host
	ACCURACY_OK      = 3
	ACCURACY_CLIPPED = 1

	PIN_PRESSURE_ADC = machine.A1

	// Serial configuration
	// Line "1700000000123,1013.25,3\n" is ~24 bytes, 10 lines/sec = 240 bytes/sec
	UART_BAUD_RATE = 115200
)
