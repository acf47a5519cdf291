package colorspace

// rec2020ToXYZMatrix is Linear Rec2020 to CIE XYZ.
var rec2020ToXYZMatrix = matrix3{
	{0.63695351, 0.14461919, 0.16885585},
	{0.26269834, 0.67800877, 0.0592929},
	{0, 0.02807314, 1.06082723},
}

// xyzToRec2020Matrix is CIE XYZ to Linear Rec2020.
var xyzToRec2020Matrix = matrix3{
	{1.71666343, -0.35567332, -0.25336809},
	{-0.66667384, 1.61645574, 0.0157683},
	{0.01764248, -0.04277698, 0.94224328},
}
