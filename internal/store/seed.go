package store

import "github.com/strivefit/mcu-crossref/internal/types"

// seed populates an empty store with the default vendor list and a small set
// of sample parts. Called with the write lock held.
func (s *Store) seed() error {
	companies := []types.Company{
		{ID: 1, Name: "Our Company", IsOurs: 1},
		{ID: 2, Name: "STMicroelectronics"},
		{ID: 3, Name: "NXP"},
		{ID: 4, Name: "Microchip"},
		{ID: 5, Name: "Renesas"},
		{ID: 6, Name: "Infineon"},
		{ID: 7, Name: "TI"},
		{ID: 8, Name: "Nordic"},
	}
	if err := s.saveCompanies(companies); err != nil {
		return err
	}

	seeds := map[int][]types.MCU{
		1: {
			{
				"id": 1, "company_id": 1, "name": "OCM4-120", "core": "ARM Cortex-M4",
				"dsp_core": 1, "fpu": 1, "max_clock_mhz": 120, "flash_kb": 512, "sram_kb": 128, "eeprom_kb": 4,
				"gpios": 80, "uarts": 4, "spis": 3, "i2cs": 2, "pwms": 8, "timers": 8, "dacs": 2, "adcs": 3,
				"cans": 1, "power_mgmt": 1, "clock_mgmt": 1, "qei": 1, "internal_osc": 1, "security_features": 1,
			},
			{
				"id": 2, "company_id": 1, "name": "OCM0-48", "core": "ARM Cortex-M0+",
				"dsp_core": 0, "fpu": 0, "max_clock_mhz": 48, "flash_kb": 128, "sram_kb": 32, "eeprom_kb": 2,
				"gpios": 40, "uarts": 2, "spis": 2, "i2cs": 1, "pwms": 4, "timers": 6, "dacs": 1, "adcs": 1,
				"cans": 0, "power_mgmt": 1, "clock_mgmt": 1, "qei": 0, "internal_osc": 1, "security_features": 0,
			},
			{
				"id": 3, "company_id": 1, "name": "OCM7-400", "core": "ARM Cortex-M7",
				"dsp_core": 1, "fpu": 1, "max_clock_mhz": 400, "flash_kb": 2048, "sram_kb": 512, "eeprom_kb": 8,
				"gpios": 160, "uarts": 6, "spis": 4, "i2cs": 4, "pwms": 16, "timers": 14, "dacs": 2, "adcs": 4,
				"cans": 2, "power_mgmt": 1, "clock_mgmt": 1, "qei": 1, "internal_osc": 1, "security_features": 1,
			},
		},
		2: {
			{
				"id": 4, "company_id": 2, "name": "STM32F407", "core": "ARM Cortex-M4",
				"dsp_core": 1, "fpu": 1, "max_clock_mhz": 168, "flash_kb": 1024, "sram_kb": 192, "eeprom_kb": 0,
				"gpios": 140, "uarts": 6, "spis": 3, "i2cs": 3, "pwms": 12, "timers": 14, "dacs": 2, "adcs": 3,
				"cans": 2, "power_mgmt": 1, "clock_mgmt": 1, "qei": 1, "internal_osc": 1, "security_features": 1,
			},
			{
				"id": 5, "company_id": 2, "name": "STM32G0B1", "core": "ARM Cortex-M0+",
				"dsp_core": 0, "fpu": 0, "max_clock_mhz": 64, "flash_kb": 512, "sram_kb": 144, "eeprom_kb": 0,
				"gpios": 84, "uarts": 6, "spis": 2, "i2cs": 2, "pwms": 8, "timers": 10, "dacs": 1, "adcs": 1,
				"cans": 0, "power_mgmt": 1, "clock_mgmt": 1, "qei": 0, "internal_osc": 1, "security_features": 1,
			},
		},
		3: {
			{
				"id": 7, "company_id": 3, "name": "LPC55S69", "core": "ARM Cortex-M33",
				"dsp_core": 1, "fpu": 1, "max_clock_mhz": 150, "flash_kb": 640, "sram_kb": 320, "eeprom_kb": 0,
				"gpios": 160, "uarts": 10, "spis": 4, "i2cs": 4, "pwms": 16, "timers": 10, "dacs": 2, "adcs": 4,
				"cans": 2, "power_mgmt": 1, "clock_mgmt": 1, "qei": 1, "internal_osc": 1, "security_features": 1,
			},
		},
		4: {
			{
				"id": 6, "company_id": 4, "name": "ATSAMD21G18", "core": "ARM Cortex-M0+",
				"dsp_core": 0, "fpu": 0, "max_clock_mhz": 48, "flash_kb": 256, "sram_kb": 32, "eeprom_kb": 0,
				"gpios": 52, "uarts": 6, "spis": 2, "i2cs": 2, "pwms": 6, "timers": 6, "dacs": 1, "adcs": 1,
				"cans": 0, "power_mgmt": 1, "clock_mgmt": 1, "qei": 0, "internal_osc": 1, "security_features": 0,
			},
		},
	}

	for cid, items := range seeds {
		if err := s.saveMCUs(cid, items); err != nil {
			return err
		}
	}
	return nil
}
