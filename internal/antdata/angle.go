package antdata

import "math"

// speed of light divided by 1e6, so that wavelength in metres is c / f(MHz)
const lightSpeedMega = 299.792458

// Wavelength returns the wavelength in metres of the frequency in MHz.
func Wavelength(freqMHz float64) float64 {
	return lightSpeedMega / freqMHz
}

// NormalizeOffAxis wraps angle into [0, 360) and mirrors it into [0, 180].
func NormalizeOffAxis(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	if angle > 180 {
		angle = 360 - angle
	}
	return angle
}

// NormalizeElevation reflects angle at the poles until it lies in [-90, 90].
func NormalizeElevation(angle float64) float64 {
	angle = math.Mod(angle, 360)
	for angle > 90 || angle < -90 {
		if angle > 90 {
			angle = 180 - angle
		} else {
			angle = -180 - angle
		}
	}
	return angle
}

// NormalizeAzimuth wraps angle into (-180, 180].
func NormalizeAzimuth(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	if angle > 180 {
		angle -= 360
	}
	return angle
}

// TiltMechanical returns the azimuth and elevation relative to the main beam of
// an antenna mechanically tilted downwards by beta. All angles are in degrees.
func TiltMechanical(azimuth, elevation, beta float64) (float64, float64) {
	phiH, thetaH, b := Rad(azimuth), Rad(elevation), Rad(beta)

	theta := math.Asin(clamp(math.Sin(thetaH)*math.Cos(b) +
		math.Cos(thetaH)*math.Cos(phiH)*math.Sin(b)))

	cosTheta := math.Cos(theta)
	if math.Abs(cosTheta) < 1e-12 {
		// azimuth is undefined at the poles
		return 0, Deg(theta)
	}
	phi := math.Acos(clamp((-math.Sin(thetaH)*math.Sin(b) +
		math.Cos(thetaH)*math.Cos(phiH)*math.Cos(b)) / cosTheta))
	return Deg(phi), Deg(theta)
}

// TiltElectrical rescales elevation of an antenna electrically tilted
// downwards by beta so that [-90, 90] maps onto itself.
func TiltElectrical(elevation, beta float64) float64 {
	x := elevation + beta
	if x >= 0 {
		return 90 * x / (90 + beta)
	}
	return 90 * x / (90 - beta)
}

func Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
