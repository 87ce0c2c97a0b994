package catalog

import (
	"sync"
	"time"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// Builtin returns the bundled catalog: the full Messier list plus popular
// NGC, IC, Sharpless, Barnard and cluster targets. The catalog is built once
// and shared; it is immutable.
func Builtin() *Catalog {
	return builtinOnce()
}

var builtinOnce = sync.OnceValue(func() *Catalog {
	c, err := New(builtinObjects)
	if err != nil {
		panic("catalog: invalid built-in data: " + err.Error())
	}
	for id, months := range builtinMonths {
		c.setBestMonths(id, months)
	}
	return c
})

// ra converts hours and decimal minutes of right ascension to degrees.
func ra(h int, m float64) float64 {
	return astro.HMSToDeg(h, int(m), (m-float64(int(m)))*60)
}

// north and south convert degrees and arcminutes of declination.
func north(d int, m float64) float64 {
	return astro.DMSToDeg(false, d, int(m), (m-float64(int(m)))*60)
}

func south(d int, m float64) float64 {
	return astro.DMSToDeg(true, d, int(m), (m-float64(int(m)))*60)
}

// dso builds a record. minor 0 means round.
func dso(id, name string, typ ObjectType, con string, raDeg, decDeg, mag, major, minor float64, alt ...string) DeepSkyObject {
	if minor == 0 {
		minor = major
	}
	if name == "" {
		name = id
	}
	return DeepSkyObject{
		ID:             id,
		Name:           name,
		AlternateNames: alt,
		Type:           typ,
		Constellation:  con,
		RA:             raDeg,
		Dec:            decDeg,
		Magnitude:      Float(mag),
		SizeMax:        Float(major),
		SizeMin:        Float(minor),
	}
}

var builtinObjects = []DeepSkyObject{
	// Messier
	dso("M1", "Crab Nebula", SupernovaRemnant, "Tau", ra(5, 34.5), north(22, 1), 8.4, 6, 4, "NGC 1952"),
	dso("M2", "", GlobularCluster, "Aqr", ra(21, 33.5), south(0, 49), 6.5, 16, 0, "NGC 7089"),
	dso("M3", "", GlobularCluster, "CVn", ra(13, 42.2), north(28, 23), 6.2, 18, 0, "NGC 5272"),
	dso("M4", "", GlobularCluster, "Sco", ra(16, 23.6), south(26, 32), 5.6, 36, 0, "NGC 6121"),
	dso("M5", "", GlobularCluster, "Ser", ra(15, 18.6), north(2, 5), 5.6, 23, 0, "NGC 5904"),
	dso("M6", "Butterfly Cluster", OpenCluster, "Sco", ra(17, 40.1), south(32, 13), 4.2, 25, 0, "NGC 6405"),
	dso("M7", "Ptolemy Cluster", OpenCluster, "Sco", ra(17, 53.9), south(34, 49), 3.3, 80, 0, "NGC 6475"),
	dso("M8", "Lagoon Nebula", EmissionNebula, "Sgr", ra(18, 3.8), south(24, 23), 6.0, 90, 40, "NGC 6523"),
	dso("M9", "", GlobularCluster, "Oph", ra(17, 19.2), south(18, 31), 7.7, 12, 0, "NGC 6333"),
	dso("M10", "", GlobularCluster, "Oph", ra(16, 57.1), south(4, 6), 6.6, 20, 0, "NGC 6254"),
	dso("M11", "Wild Duck Cluster", OpenCluster, "Sct", ra(18, 51.1), south(6, 16), 6.3, 14, 0, "NGC 6705"),
	dso("M12", "", GlobularCluster, "Oph", ra(16, 47.2), south(1, 57), 6.7, 16, 0, "NGC 6218"),
	dso("M13", "Hercules Globular Cluster", GlobularCluster, "Her", ra(16, 41.7), north(36, 28), 5.8, 20, 0, "NGC 6205", "Great Hercules Cluster"),
	dso("M14", "", GlobularCluster, "Oph", ra(17, 37.6), south(3, 15), 7.6, 11, 0, "NGC 6402"),
	dso("M15", "", GlobularCluster, "Peg", ra(21, 30.0), north(12, 10), 6.2, 18, 0, "NGC 7078"),
	dso("M16", "Eagle Nebula", EmissionNebula, "Ser", ra(18, 18.8), south(13, 47), 6.0, 35, 28, "NGC 6611", "Pillars of Creation"),
	dso("M17", "Omega Nebula", EmissionNebula, "Sgr", ra(18, 20.8), south(16, 11), 6.0, 46, 37, "NGC 6618", "Swan Nebula"),
	dso("M18", "", OpenCluster, "Sgr", ra(18, 19.9), south(17, 8), 7.5, 9, 0, "NGC 6613"),
	dso("M19", "", GlobularCluster, "Oph", ra(17, 2.6), south(26, 16), 6.8, 17, 0, "NGC 6273"),
	dso("M20", "Trifid Nebula", EmissionNebula, "Sgr", ra(18, 2.6), south(23, 2), 6.3, 28, 0, "NGC 6514"),
	dso("M21", "", OpenCluster, "Sgr", ra(18, 4.6), south(22, 30), 6.5, 13, 0, "NGC 6531"),
	dso("M22", "", GlobularCluster, "Sgr", ra(18, 36.4), south(23, 54), 5.1, 32, 0, "NGC 6656"),
	dso("M23", "", OpenCluster, "Sgr", ra(17, 56.8), south(19, 1), 6.9, 27, 0, "NGC 6494"),
	dso("M24", "Sagittarius Star Cloud", StarCloud, "Sgr", ra(18, 16.9), south(18, 29), 4.6, 90, 0, "IC 4715"),
	dso("M25", "", OpenCluster, "Sgr", ra(18, 31.6), south(19, 15), 4.6, 32, 0, "IC 4725"),
	dso("M26", "", OpenCluster, "Sct", ra(18, 45.2), south(9, 24), 8.0, 15, 0, "NGC 6694"),
	dso("M27", "Dumbbell Nebula", PlanetaryNebula, "Vul", ra(19, 59.6), north(22, 43), 7.4, 8, 5.7, "NGC 6853", "Apple Core Nebula"),
	dso("M28", "", GlobularCluster, "Sgr", ra(18, 24.5), south(24, 52), 6.8, 11, 0, "NGC 6626"),
	dso("M29", "", OpenCluster, "Cyg", ra(20, 23.9), north(38, 32), 7.1, 7, 0, "NGC 6913"),
	dso("M30", "", GlobularCluster, "Cap", ra(21, 40.4), south(23, 11), 7.2, 12, 0, "NGC 7099"),
	dso("M31", "Andromeda Galaxy", Galaxy, "And", ra(0, 42.7), north(41, 16), 3.4, 178, 63, "NGC 224", "Andromeda Nebula"),
	dso("M32", "", Galaxy, "And", ra(0, 42.7), north(40, 52), 8.1, 8, 6, "NGC 221"),
	dso("M33", "Triangulum Galaxy", Galaxy, "Tri", ra(1, 33.9), north(30, 39), 5.7, 73, 45, "NGC 598", "Pinwheel of Triangulum"),
	dso("M34", "", OpenCluster, "Per", ra(2, 42.0), north(42, 47), 5.5, 35, 0, "NGC 1039"),
	dso("M35", "", OpenCluster, "Gem", ra(6, 8.9), north(24, 20), 5.3, 28, 0, "NGC 2168"),
	dso("M36", "Pinwheel Cluster", OpenCluster, "Aur", ra(5, 36.1), north(34, 8), 6.3, 12, 0, "NGC 1960"),
	dso("M37", "", OpenCluster, "Aur", ra(5, 52.4), north(32, 33), 6.2, 24, 0, "NGC 2099"),
	dso("M38", "Starfish Cluster", OpenCluster, "Aur", ra(5, 28.4), north(35, 50), 7.4, 21, 0, "NGC 1912"),
	dso("M39", "", OpenCluster, "Cyg", ra(21, 32.2), north(48, 26), 4.6, 32, 0, "NGC 7092"),
	dso("M40", "Winnecke 4", DoubleStar, "UMa", ra(12, 22.4), north(58, 5), 8.4, 0.8, 0),
	dso("M41", "", OpenCluster, "CMa", ra(6, 46.0), south(20, 44), 4.5, 38, 0, "NGC 2287"),
	dso("M42", "Orion Nebula", EmissionNebula, "Ori", ra(5, 35.4), south(5, 27), 4.0, 85, 60, "NGC 1976", "Great Orion Nebula"),
	dso("M43", "De Mairan's Nebula", EmissionNebula, "Ori", ra(5, 35.6), south(5, 16), 9.0, 20, 15, "NGC 1982"),
	dso("M44", "Beehive Cluster", OpenCluster, "Cnc", ra(8, 40.1), north(19, 59), 3.7, 95, 0, "NGC 2632", "Praesepe"),
	dso("M45", "Pleiades", OpenCluster, "Tau", ra(3, 47.0), north(24, 7), 1.6, 110, 0, "Seven Sisters", "Mel 22"),
	dso("M46", "", OpenCluster, "Pup", ra(7, 41.8), south(14, 49), 6.1, 27, 0, "NGC 2437"),
	dso("M47", "", OpenCluster, "Pup", ra(7, 36.6), south(14, 30), 4.2, 30, 0, "NGC 2422"),
	dso("M48", "", OpenCluster, "Hya", ra(8, 13.8), south(5, 48), 5.8, 54, 0, "NGC 2548"),
	dso("M49", "", Galaxy, "Vir", ra(12, 29.8), north(8, 0), 8.4, 10, 8, "NGC 4472"),
	dso("M50", "", OpenCluster, "Mon", ra(7, 3.2), south(8, 20), 5.9, 16, 0, "NGC 2323"),
	dso("M51", "Whirlpool Galaxy", Galaxy, "CVn", ra(13, 29.9), north(47, 12), 8.4, 11, 7, "NGC 5194"),
	dso("M52", "", OpenCluster, "Cas", ra(23, 24.2), north(61, 35), 7.3, 13, 0, "NGC 7654"),
	dso("M53", "", GlobularCluster, "Com", ra(13, 12.9), north(18, 10), 7.6, 13, 0, "NGC 5024"),
	dso("M54", "", GlobularCluster, "Sgr", ra(18, 55.1), south(30, 29), 7.6, 12, 0, "NGC 6715"),
	dso("M55", "", GlobularCluster, "Sgr", ra(19, 40.0), south(30, 58), 6.3, 19, 0, "NGC 6809"),
	dso("M56", "", GlobularCluster, "Lyr", ra(19, 16.6), north(30, 11), 8.3, 8.8, 0, "NGC 6779"),
	dso("M57", "Ring Nebula", PlanetaryNebula, "Lyr", ra(18, 53.6), north(33, 2), 8.8, 1.4, 1, "NGC 6720"),
	dso("M58", "", Galaxy, "Vir", ra(12, 37.7), north(11, 49), 9.7, 6, 5, "NGC 4579"),
	dso("M59", "", Galaxy, "Vir", ra(12, 42.0), north(11, 39), 9.6, 5, 4, "NGC 4621"),
	dso("M60", "", Galaxy, "Vir", ra(12, 43.7), north(11, 33), 8.8, 7, 6, "NGC 4649"),
	dso("M61", "", Galaxy, "Vir", ra(12, 21.9), north(4, 28), 9.7, 6, 5.5, "NGC 4303"),
	dso("M62", "", GlobularCluster, "Oph", ra(17, 1.2), south(30, 7), 6.5, 15, 0, "NGC 6266"),
	dso("M63", "Sunflower Galaxy", Galaxy, "CVn", ra(13, 15.8), north(42, 2), 8.6, 13, 7, "NGC 5055"),
	dso("M64", "Black Eye Galaxy", Galaxy, "Com", ra(12, 56.7), north(21, 41), 8.5, 10, 5, "NGC 4826"),
	dso("M65", "", Galaxy, "Leo", ra(11, 18.9), north(13, 5), 9.3, 9.8, 2.9, "NGC 3623", "Leo Triplet"),
	dso("M66", "", Galaxy, "Leo", ra(11, 20.2), north(12, 59), 8.9, 9.1, 4.2, "NGC 3627", "Leo Triplet"),
	dso("M67", "", OpenCluster, "Cnc", ra(8, 51.4), north(11, 49), 6.1, 30, 0, "NGC 2682"),
	dso("M68", "", GlobularCluster, "Hya", ra(12, 39.5), south(26, 45), 7.8, 11, 0, "NGC 4590"),
	dso("M69", "", GlobularCluster, "Sgr", ra(18, 31.4), south(32, 21), 7.6, 7.1, 0, "NGC 6637"),
	dso("M70", "", GlobularCluster, "Sgr", ra(18, 43.2), south(32, 18), 7.9, 7.8, 0, "NGC 6681"),
	dso("M71", "", GlobularCluster, "Sge", ra(19, 53.8), north(18, 47), 8.2, 7.2, 0, "NGC 6838"),
	dso("M72", "", GlobularCluster, "Aqr", ra(20, 53.5), south(12, 32), 9.3, 5.9, 0, "NGC 6981"),
	dso("M73", "", Asterism, "Aqr", ra(20, 59.0), south(12, 38), 9.0, 2.8, 0, "NGC 6994"),
	dso("M74", "Phantom Galaxy", Galaxy, "Psc", ra(1, 36.7), north(15, 47), 9.4, 10, 9.5, "NGC 628"),
	dso("M75", "", GlobularCluster, "Sgr", ra(20, 6.1), south(21, 55), 8.5, 6.8, 0, "NGC 6864"),
	dso("M76", "Little Dumbbell Nebula", PlanetaryNebula, "Per", ra(1, 42.4), north(51, 34), 10.1, 2.7, 1.8, "NGC 650", "NGC 651"),
	dso("M77", "Cetus A", Galaxy, "Cet", ra(2, 42.7), south(0, 1), 8.9, 7, 6, "NGC 1068"),
	dso("M78", "", ReflectionNebula, "Ori", ra(5, 46.7), north(0, 3), 8.3, 8, 6, "NGC 2068"),
	dso("M79", "", GlobularCluster, "Lep", ra(5, 24.5), south(24, 33), 7.7, 9.6, 0, "NGC 1904"),
	dso("M80", "", GlobularCluster, "Sco", ra(16, 17.0), south(22, 59), 7.3, 10, 0, "NGC 6093"),
	dso("M81", "Bode's Galaxy", Galaxy, "UMa", ra(9, 55.6), north(69, 4), 6.9, 27, 14, "NGC 3031"),
	dso("M82", "Cigar Galaxy", Galaxy, "UMa", ra(9, 55.8), north(69, 41), 8.4, 11, 4.6, "NGC 3034"),
	dso("M83", "Southern Pinwheel Galaxy", Galaxy, "Hya", ra(13, 37.0), south(29, 52), 7.6, 13, 12, "NGC 5236"),
	dso("M84", "", Galaxy, "Vir", ra(12, 25.1), north(12, 53), 9.1, 6.5, 5.6, "NGC 4374"),
	dso("M85", "", Galaxy, "Com", ra(12, 25.4), north(18, 11), 9.1, 7.1, 5.5, "NGC 4382"),
	dso("M86", "", Galaxy, "Vir", ra(12, 26.2), north(12, 57), 8.9, 8.9, 5.8, "NGC 4406"),
	dso("M87", "Virgo A", Galaxy, "Vir", ra(12, 30.8), north(12, 23), 8.6, 8.3, 6.6, "NGC 4486"),
	dso("M88", "", Galaxy, "Com", ra(12, 32.0), north(14, 25), 9.6, 6.9, 3.7, "NGC 4501"),
	dso("M89", "", Galaxy, "Vir", ra(12, 35.7), north(12, 33), 9.8, 5.1, 4.2, "NGC 4552"),
	dso("M90", "", Galaxy, "Vir", ra(12, 36.8), north(13, 10), 9.5, 9.5, 4.4, "NGC 4569"),
	dso("M91", "", Galaxy, "Com", ra(12, 35.4), north(14, 30), 10.2, 5.4, 4.4, "NGC 4548"),
	dso("M92", "", GlobularCluster, "Her", ra(17, 17.1), north(43, 8), 6.4, 14, 0, "NGC 6341"),
	dso("M93", "", OpenCluster, "Pup", ra(7, 44.6), south(23, 52), 6.0, 22, 0, "NGC 2447"),
	dso("M94", "Croc's Eye Galaxy", Galaxy, "CVn", ra(12, 50.9), north(41, 7), 8.2, 11, 9, "NGC 4736", "Cat's Eye Galaxy"),
	dso("M95", "", Galaxy, "Leo", ra(10, 44.0), north(11, 42), 9.7, 7.4, 5, "NGC 3351"),
	dso("M96", "", Galaxy, "Leo", ra(10, 46.8), north(11, 49), 9.2, 7.6, 5.2, "NGC 3368"),
	dso("M97", "Owl Nebula", PlanetaryNebula, "UMa", ra(11, 14.8), north(55, 1), 9.9, 3.4, 3.3, "NGC 3587"),
	dso("M98", "", Galaxy, "Com", ra(12, 13.8), north(14, 54), 10.1, 9.8, 2.8, "NGC 4192"),
	dso("M99", "Coma Pinwheel", Galaxy, "Com", ra(12, 18.8), north(14, 25), 9.9, 5.4, 4.7, "NGC 4254"),
	dso("M100", "", Galaxy, "Com", ra(12, 22.9), north(15, 49), 9.3, 7.4, 6.3, "NGC 4321"),
	dso("M101", "Pinwheel Galaxy", Galaxy, "UMa", ra(14, 3.2), north(54, 21), 7.9, 29, 27, "NGC 5457"),
	dso("M102", "Spindle Galaxy", Galaxy, "Dra", ra(15, 6.5), north(55, 46), 9.9, 6.4, 2.8, "NGC 5866"),
	dso("M103", "", OpenCluster, "Cas", ra(1, 33.2), north(60, 42), 7.4, 6, 0, "NGC 581"),
	dso("M104", "Sombrero Galaxy", Galaxy, "Vir", ra(12, 40.0), south(11, 37), 8.0, 8.7, 3.5, "NGC 4594"),
	dso("M105", "", Galaxy, "Leo", ra(10, 47.8), north(12, 35), 9.3, 5.4, 4.8, "NGC 3379"),
	dso("M106", "", Galaxy, "CVn", ra(12, 19.0), north(47, 18), 8.4, 18.6, 7.2, "NGC 4258"),
	dso("M107", "", GlobularCluster, "Oph", ra(16, 32.5), south(13, 3), 7.9, 13, 0, "NGC 6171"),
	dso("M108", "Surfboard Galaxy", Galaxy, "UMa", ra(11, 11.5), north(55, 40), 10.0, 8.7, 2.2, "NGC 3556"),
	dso("M109", "", Galaxy, "UMa", ra(11, 57.6), north(53, 23), 9.8, 7.6, 4.7, "NGC 3992"),
	dso("M110", "", Galaxy, "And", ra(0, 40.4), north(41, 41), 8.5, 21.9, 11, "NGC 205"),

	// NGC
	dso("NGC 7000", "North America Nebula", EmissionNebula, "Cyg", ra(20, 59.3), north(44, 31), 4.0, 120, 100, "C20"),
	dso("NGC 6960", "Western Veil Nebula", SupernovaRemnant, "Cyg", ra(20, 45.7), north(30, 43), 7.0, 70, 6, "C34", "Witch's Broom Nebula", "Veil Nebula"),
	dso("NGC 6992", "Eastern Veil Nebula", SupernovaRemnant, "Cyg", ra(20, 56.4), north(31, 43), 7.0, 60, 8, "C33", "Network Nebula", "Veil Nebula"),
	dso("NGC 6888", "Crescent Nebula", EmissionNebula, "Cyg", ra(20, 12.0), north(38, 21), 7.4, 18, 12, "C27"),
	dso("NGC 2237", "Rosette Nebula", EmissionNebula, "Mon", ra(6, 32.3), north(5, 3), 9.0, 80, 60, "C49"),
	dso("NGC 2024", "Flame Nebula", EmissionNebula, "Ori", ra(5, 41.9), south(1, 51), 10.0, 30, 30),
	dso("NGC 7635", "Bubble Nebula", EmissionNebula, "Cas", ra(23, 20.7), north(61, 12), 10.0, 15, 8, "C11"),
	dso("NGC 281", "Pacman Nebula", EmissionNebula, "Cas", ra(0, 52.8), north(56, 37), 7.4, 35, 30, "Sh2-184"),
	dso("NGC 869", "Double Cluster", OpenCluster, "Per", ra(2, 19.0), north(57, 9), 3.7, 30, 0, "C14", "h Persei", "NGC 884"),
	dso("NGC 253", "Sculptor Galaxy", Galaxy, "Scl", ra(0, 47.6), south(25, 17), 7.1, 27.5, 6.8, "C65", "Silver Coin Galaxy"),
	dso("NGC 5128", "Centaurus A", Galaxy, "Cen", ra(13, 25.5), south(43, 1), 6.8, 25.7, 20, "C77"),
	dso("NGC 4565", "Needle Galaxy", Galaxy, "Com", ra(12, 36.3), north(25, 59), 9.6, 15.9, 1.9, "C38"),
	dso("NGC 891", "Silver Sliver Galaxy", Galaxy, "And", ra(2, 22.6), north(42, 21), 9.9, 13.5, 2.5, "C23"),
	dso("NGC 7293", "Helix Nebula", PlanetaryNebula, "Aqr", ra(22, 29.6), south(20, 50), 7.6, 16, 12, "C63", "Eye of God"),
	dso("NGC 6543", "Cat's Eye Nebula", PlanetaryNebula, "Dra", ra(17, 58.6), north(66, 38), 8.1, 0.4, 0.3, "C6"),
	dso("NGC 2392", "Eskimo Nebula", PlanetaryNebula, "Gem", ra(7, 29.2), north(20, 55), 9.2, 0.8, 0.7, "C39", "Clownface Nebula"),
	dso("NGC 7331", "Deer Lick Galaxy", Galaxy, "Peg", ra(22, 37.1), north(34, 25), 9.5, 10.5, 3.7, "C30"),
	dso("NGC 2403", "", Galaxy, "Cam", ra(7, 36.9), north(65, 36), 8.4, 21.9, 12.3, "C7"),
	dso("NGC 6946", "Fireworks Galaxy", Galaxy, "Cep", ra(20, 34.9), north(60, 9), 8.8, 11.5, 9.8, "C12"),
	dso("NGC 7023", "Iris Nebula", ReflectionNebula, "Cep", ra(21, 1.6), north(68, 10), 6.8, 18, 18, "C4"),
	dso("NGC 2359", "Thor's Helmet", EmissionNebula, "CMa", ra(7, 18.6), south(13, 12), 11.5, 10, 8),
	dso("NGC 3372", "Carina Nebula", EmissionNebula, "Car", ra(10, 45.1), south(59, 52), 1.0, 120, 120, "C92", "Eta Carinae Nebula"),
	dso("NGC 104", "47 Tucanae", GlobularCluster, "Tuc", ra(0, 24.1), south(72, 5), 4.1, 30.9, 0, "C106"),
	dso("NGC 5139", "Omega Centauri", GlobularCluster, "Cen", ra(13, 26.8), south(47, 29), 3.9, 36.3, 0, "C80"),
	dso("NGC 1499", "California Nebula", EmissionNebula, "Per", ra(4, 3.3), north(36, 25), 6.0, 145, 40, "Sh2-220"),
	dso("NGC 4631", "Whale Galaxy", Galaxy, "CVn", ra(12, 42.1), north(32, 32), 9.2, 15.5, 2.7, "C32"),

	// IC
	dso("IC 434", "Horsehead Nebula Region", EmissionNebula, "Ori", ra(5, 41.0), south(2, 24), 7.3, 60, 10),
	dso("IC 1805", "Heart Nebula", EmissionNebula, "Cas", ra(2, 33.4), north(61, 27), 6.5, 150, 150, "Sh2-190"),
	dso("IC 1848", "Soul Nebula", EmissionNebula, "Cas", ra(2, 51.2), north(60, 26), 6.5, 150, 75, "Sh2-199"),
	dso("IC 1396", "Elephant's Trunk Nebula", EmissionNebula, "Cep", ra(21, 39.1), north(57, 30), 3.5, 170, 140, "Sh2-131"),
	dso("IC 5070", "Pelican Nebula", EmissionNebula, "Cyg", ra(20, 50.8), north(44, 21), 8.0, 60, 50),
	dso("IC 5146", "Cocoon Nebula", EmissionNebula, "Cyg", ra(21, 53.5), north(47, 16), 7.2, 12, 12, "C19"),
	dso("IC 405", "Flaming Star Nebula", EmissionNebula, "Aur", ra(5, 16.2), north(34, 16), 6.0, 37, 19, "C31"),
	dso("IC 2118", "Witch Head Nebula", ReflectionNebula, "Eri", ra(5, 2.0), south(7, 54), 13.0, 180, 60),
	dso("IC 2177", "Seagull Nebula", EmissionNebula, "Mon", ra(7, 5.1), south(10, 42), 8.0, 120, 40, "Sh2-296"),

	// Sharpless
	dso("Sh2-155", "Cave Nebula", EmissionNebula, "Cep", ra(22, 56.8), north(62, 37), 7.7, 50, 30, "C9"),
	dso("Sh2-101", "Tulip Nebula", EmissionNebula, "Cyg", ra(20, 0.0), north(35, 17), 9.0, 16, 9),
	dso("Sh2-129", "Flying Bat Nebula", EmissionNebula, "Cep", ra(21, 11.8), north(60, 0), 8.0, 145, 80),
	dso("Sh2-240", "Spaghetti Nebula", SupernovaRemnant, "Tau", ra(5, 39.0), north(28, 0), 14.0, 180, 180, "Simeis 147"),

	// Barnard, LDN, LBN
	dso("B33", "Horsehead Nebula", DarkNebula, "Ori", ra(5, 40.9), south(2, 28), 11.0, 8, 6),
	dso("B143", "Barnard's E", DarkNebula, "Aql", ra(19, 40.7), north(11, 1), 11.0, 30, 20, "B142"),
	dso("LDN 1235", "Shark Nebula", DarkNebula, "Cep", ra(22, 13.0), north(73, 20), 12.0, 60, 30),
	dso("LBN 437", "Gecko Nebula", EmissionNebula, "Lac", ra(22, 32.4), north(40, 47), 11.0, 40, 20),

	// Clusters, asterisms, galaxy groups
	dso("Mel 111", "Coma Star Cluster", OpenCluster, "Com", ra(12, 25.1), north(26, 6), 1.8, 275, 0),
	dso("Cr 399", "Coathanger", Asterism, "Vul", ra(19, 25.4), north(20, 11), 3.6, 60, 0, "Brocchi's Cluster"),
	dso("Tr 14", "", OpenCluster, "Car", ra(10, 43.9), south(59, 33), 5.5, 9, 0),
	dso("vdB 142", "", ReflectionNebula, "Cep", ra(21, 36.0), north(57, 30), 10.0, 10, 5),
	dso("Abell 426", "Perseus Cluster", GalaxyCluster, "Per", ra(3, 19.8), north(41, 31), 12.0, 30, 30),
}

// builtinMonths lists the best imaging months of well-known targets for
// mid-northern observers.
var builtinMonths = map[string][]time.Month{
	"M1":    {time.December, time.January, time.February},
	"M3":    {time.April, time.May, time.June},
	"M5":    {time.May, time.June},
	"M8":    {time.June, time.July, time.August},
	"M11":   {time.July, time.August},
	"M13":   {time.June, time.July, time.August},
	"M16":   {time.June, time.July, time.August},
	"M17":   {time.June, time.July, time.August},
	"M20":   {time.June, time.July, time.August},
	"M22":   {time.July, time.August},
	"M27":   {time.July, time.August, time.September},
	"M31":   {time.September, time.October, time.November, time.December},
	"M33":   {time.September, time.October, time.November},
	"M42":   {time.December, time.January, time.February},
	"M44":   {time.February, time.March},
	"M45":   {time.November, time.December, time.January},
	"M51":   {time.April, time.May, time.June},
	"M57":   {time.June, time.July, time.August},
	"M63":   {time.April, time.May},
	"M64":   {time.April, time.May},
	"M65":   {time.March, time.April, time.May},
	"M66":   {time.March, time.April, time.May},
	"M81":   {time.February, time.March, time.April},
	"M82":   {time.February, time.March, time.April},
	"M83":   {time.April, time.May},
	"M92":   {time.June, time.July},
	"M97":   {time.March, time.April},
	"M101":  {time.April, time.May, time.June},
	"M104":  {time.April, time.May},
	"M106":  {time.April, time.May},
	"M108":  {time.March, time.April},

	"NGC 7000": {time.July, time.August, time.September, time.October},
	"NGC 6960": {time.August, time.September, time.October},
	"NGC 6992": {time.August, time.September, time.October},
	"NGC 6888": {time.July, time.August, time.September},
	"NGC 2237": {time.January, time.February},
	"NGC 2024": {time.December, time.January, time.February},
	"NGC 7635": {time.September, time.October, time.November},
	"NGC 869":  {time.October, time.November, time.December},
	"NGC 253":  {time.October, time.November},
	"NGC 891":  {time.October, time.November, time.December},
	"NGC 7293": {time.September, time.October},
	"NGC 2403": {time.January, time.February, time.March},
	"NGC 1499": {time.November, time.December, time.January},
	"IC 434":   {time.December, time.January, time.February},
	"IC 1805":  {time.October, time.November, time.December, time.January},
	"IC 1848":  {time.October, time.November, time.December, time.January},
	"IC 1396":  {time.August, time.September, time.October},
	"IC 5070":  {time.July, time.August, time.September, time.October},
	"Sh2-155":  {time.September, time.October},
	"B33":      {time.December, time.January, time.February},
}
