package collector

import "strconv"

// enumNames maps enum codes to their display names. A code is known when it
// has a name.
type enumNames[E ~int] map[E]string

func (n enumNames[E]) name(e E) string {
	if s, ok := n[e]; ok {
		return s
	}
	return strconv.Itoa(int(e))
}

func (n enumNames[E]) lookup(code int) (E, bool) {
	e := E(code)
	_, ok := n[e]
	return e, ok
}

// CPUArchitecture is Win32_Processor.Architecture.
type CPUArchitecture int

const (
	CPUArchitectureNone    CPUArchitecture = -1
	CPUArchitectureX86     CPUArchitecture = 0
	CPUArchitectureMIPS    CPUArchitecture = 1
	CPUArchitectureAlpha   CPUArchitecture = 2
	CPUArchitecturePowerPC CPUArchitecture = 3
	CPUArchitectureARM     CPUArchitecture = 5
	CPUArchitectureIA64    CPUArchitecture = 6
	CPUArchitectureX64     CPUArchitecture = 9
	CPUArchitectureARM64   CPUArchitecture = 12
)

var cpuArchitectureNames = enumNames[CPUArchitecture]{
	CPUArchitectureNone:    "NONE",
	CPUArchitectureX86:     "X86",
	CPUArchitectureMIPS:    "MIPS",
	CPUArchitectureAlpha:   "ALPHA",
	CPUArchitecturePowerPC: "POWERPC",
	CPUArchitectureARM:     "ARM",
	CPUArchitectureIA64:    "IA64",
	CPUArchitectureX64:     "X64",
	CPUArchitectureARM64:   "ARM64",
}

func (a CPUArchitecture) String() string { return cpuArchitectureNames.name(a) }

func (a CPUArchitecture) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// CPUStatus is Win32_Processor.CpuStatus.
type CPUStatus int

const (
	CPUStatusNone         CPUStatus = -1
	CPUStatusUnknown      CPUStatus = 0
	CPUStatusEnabled      CPUStatus = 1
	CPUStatusDisabledUser CPUStatus = 2
	CPUStatusDisabledBIOS CPUStatus = 3
	CPUStatusIdle         CPUStatus = 4
	CPUStatusReserved     CPUStatus = 5
	CPUStatusOther        CPUStatus = 7
)

var cpuStatusNames = enumNames[CPUStatus]{
	CPUStatusNone:         "NONE",
	CPUStatusUnknown:      "UNKNOWN",
	CPUStatusEnabled:      "ENABLED",
	CPUStatusDisabledUser: "DISABLED_USER",
	CPUStatusDisabledBIOS: "DISABLED_BIOS",
	CPUStatusIdle:         "IDLE",
	CPUStatusReserved:     "RESERVED",
	CPUStatusOther:        "OTHER",
}

// lookupCPUStatus folds both reserved codes (5 and 6) into CPUStatusReserved.
func lookupCPUStatus(code int) (CPUStatus, bool) {
	if code == 6 {
		return CPUStatusReserved, true
	}
	if code == int(CPUStatusNone) {
		return CPUStatusNone, false
	}
	return cpuStatusNames.lookup(code)
}

func (s CPUStatus) String() string { return cpuStatusNames.name(s) }

func (s CPUStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// CPUVoltage is Win32_Processor.CurrentVoltage.
type CPUVoltage int

const (
	CPUVoltageNone    CPUVoltage = -1
	CPUVoltageUnknown CPUVoltage = 0
	CPUVoltage5V      CPUVoltage = 1
	CPUVoltage3_3V    CPUVoltage = 2
	CPUVoltage2_9V    CPUVoltage = 4
)

var cpuVoltageNames = enumNames[CPUVoltage]{
	CPUVoltageNone:    "NONE",
	CPUVoltageUnknown: "UNKNOWN",
	CPUVoltage5V:      "5V",
	CPUVoltage3_3V:    "3.3V",
	CPUVoltage2_9V:    "2.9V",
}

func (v CPUVoltage) String() string { return cpuVoltageNames.name(v) }

func (v CPUVoltage) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// CPUType is Win32_Processor.ProcessorType.
type CPUType int

const CPUTypeNone CPUType = -1

var cpuTypeNames = enumNames[CPUType]{
	CPUTypeNone: "NONE",
	1:           "OTHER",
	2:           "UNKNOWN",
	3:           "CENTRAL_PROCESSOR",
	4:           "MATH_PROCESSOR",
	5:           "DSP_PROCESSOR",
	6:           "VIDEO_PROCESSOR",
}

func (t CPUType) String() string { return cpuTypeNames.name(t) }

func (t CPUType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// CPUFamily is Win32_Processor.Family.
type CPUFamily int

const CPUFamilyNone CPUFamily = -1

var cpuFamilyNames = enumNames[CPUFamily]{
	CPUFamilyNone: "NONE",
	1:             "Other",
	2:             "Unknown",
	3:             "8086",
	4:             "80286",
	5:             "Intel386",
	6:             "Intel486",
	7:             "8087",
	8:             "80287",
	9:             "80387",
	10:            "80487",
	11:            "Pentium",
	12:            "Pentium Pro",
	13:            "Pentium II",
	14:            "Pentium MMX",
	15:            "Celeron",
	16:            "Pentium II Xeon",
	17:            "Pentium III",
	18:            "M1",
	19:            "M2",
	24:            "K5",
	25:            "K6",
	26:            "K6-2",
	27:            "K6-3",
	28:            "AMD Athlon",
	29:            "AMD Duron",
	30:            "AMD29000",
	31:            "K6-2+",
	32:            "Power PC",
	33:            "Power PC 601",
	34:            "Power PC 603",
	35:            "Power PC 603+",
	36:            "Power PC 604",
	37:            "Power PC 620",
	38:            "Power PC X704",
	39:            "Power PC 750",
	48:            "Alpha",
	49:            "Alpha 21064",
	50:            "Alpha 21066",
	51:            "Alpha 21164",
	52:            "Alpha 21164PC",
	53:            "Alpha 21164a",
	54:            "Alpha 21264",
	55:            "Alpha 21364",
	64:            "MIPS",
	65:            "MIPS R4000",
	66:            "MIPS R4200",
	67:            "MIPS R4400",
	68:            "MIPS R4600",
	69:            "MIPS R10000",
	80:            "SPARC",
	81:            "SuperSPARC",
	82:            "microSPARC II",
	83:            "microSPARC IIep",
	84:            "UltraSPARC",
	85:            "UltraSPARC II",
	86:            "UltraSPARC IIi",
	87:            "UltraSPARC III",
	88:            "UltraSPARC IIIi",
	96:            "68040",
	97:            "68xxx",
	98:            "68000",
	99:            "68010",
	100:           "68020",
	101:           "68030",
	107:           "AMD Zen",
	112:           "Hobbit",
	120:           "Crusoe TM5000",
	121:           "Crusoe TM3000",
	122:           "Efficeon TM8000",
	128:           "Weitek",
	130:           "Itanium",
	131:           "AMD Athlon 64",
	132:           "AMD Opteron",
	144:           "PA-RISC",
	145:           "PA-RISC 8500",
	146:           "PA-RISC 8000",
	147:           "PA-RISC 7300LC",
	148:           "PA-RISC 7200",
	149:           "PA-RISC 7100LC",
	150:           "PA-RISC 7100",
	160:           "V30",
	176:           "Pentium III Xeon",
	177:           "Pentium III SpeedStep",
	178:           "Pentium 4",
	179:           "Intel Xeon",
	180:           "AS400",
	181:           "Intel Xeon MP",
	182:           "AMD Athlon XP",
	183:           "AMD Athlon MP",
	184:           "Intel Itanium 2",
	185:           "Intel Pentium M",
	190:           "K7",
	191:           "Intel Core 2 Duo",
	198:           "Intel Core i7",
	200:           "IBM390",
	201:           "G4",
	202:           "G5",
	203:           "G6",
	204:           "z/Architecture",
	205:           "Intel Core i5",
	206:           "Intel Core i3",
	207:           "Intel Core i9",
	250:           "i860",
	251:           "i960",
	260:           "SH-3",
	261:           "SH-4",
	280:           "ARM",
	281:           "StrongARM",
	300:           "6x86",
	301:           "MediaGX",
	302:           "MII",
	320:           "WinChip",
	350:           "DSP",
	500:           "Video Processor",
}

func lookupCPUFamily(code int) (CPUFamily, bool) {
	if code == int(CPUFamilyNone) {
		return CPUFamilyNone, false
	}
	return cpuFamilyNames.lookup(code)
}

func (f CPUFamily) String() string { return cpuFamilyNames.name(f) }

func (f CPUFamily) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// MemoryFormFactor is Win32_PhysicalMemory.FormFactor.
type MemoryFormFactor int

const MemoryFormFactorUnknown MemoryFormFactor = 0

var memoryFormFactorNames = enumNames[MemoryFormFactor]{
	MemoryFormFactorUnknown: "UNKNOWN",
	1:                       "OTHER",
	2:                       "SIP",
	3:                       "DIP",
	4:                       "ZIP",
	5:                       "SOJ",
	6:                       "PROPRIETARY",
	7:                       "SIMM",
	8:                       "DIMM",
	9:                       "TSOP",
	10:                      "PGA",
	11:                      "RIMM",
	12:                      "SODIMM",
	13:                      "SRIMM",
	14:                      "SMD",
	15:                      "SSMP",
	16:                      "QFP",
	17:                      "TQFP",
	18:                      "SOIC",
	19:                      "LCC",
	20:                      "PLCC",
	21:                      "BGA",
	22:                      "FPBGA",
	23:                      "LGA",
}

func (f MemoryFormFactor) String() string { return memoryFormFactorNames.name(f) }

func (f MemoryFormFactor) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// VideoArchitecture is Win32_VideoController.VideoArchitecture.
type VideoArchitecture int

const VideoArchitectureUnknown VideoArchitecture = 2

var videoArchitectureNames = enumNames[VideoArchitecture]{
	1:                        "OTHER",
	VideoArchitectureUnknown: "UNKNOWN",
	3:                        "CGA",
	4:                        "EGA",
	5:                        "VGA",
	6:                        "SVGA",
	7:                        "MDA",
	8:                        "HGC",
	9:                        "MCGA",
	10:                       "8514A",
	11:                       "XGA",
	12:                       "LINEAR_FRAME_BUFFER",
	160:                      "PC_98",
}

func (a VideoArchitecture) String() string { return videoArchitectureNames.name(a) }

func (a VideoArchitecture) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// VideoMemoryType is Win32_VideoController.VideoMemoryType.
type VideoMemoryType int

const VideoMemoryTypeUnknown VideoMemoryType = 2

var videoMemoryTypeNames = enumNames[VideoMemoryType]{
	1:                      "OTHER",
	VideoMemoryTypeUnknown: "UNKNOWN",
	3:                      "VRAM",
	4:                      "DRAM",
	5:                      "SRAM",
	6:                      "WRAM",
	7:                      "EDO_RAM",
	8:                      "BURST_SYNCHRONOUS_DRAM",
	9:                      "PIPELINED_BURST_SRAM",
	10:                     "CDRAM",
	11:                     "3DRAM",
	12:                     "SDRAM",
	13:                     "SGRAM",
}

func (t VideoMemoryType) String() string { return videoMemoryTypeNames.name(t) }

func (t VideoMemoryType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// diskStatusInfo decodes CIM_LogicalDevice.StatusInfo. The "UNKNWON"
// spelling is what downstream consumers match on.
func diskStatusInfo(code int) string {
	switch code {
	case 1:
		return "OTHER"
	case 2:
		return "UNKNWON"
	case 3:
		return "ENABLED"
	case 4:
		return "DISABLED"
	case 5:
		return "NOT APPLICABLE"
	}
	return ""
}
