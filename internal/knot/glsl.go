package knot

import (
	"fmt"
	"strconv"
	"strings"
)

// FragmentLib returns the GLSL functions a renderer needs to replicate
// the membrane classification per fragment: the closed-form quartic
// solver and the world-visibility test. The constants are formatted from
// the same Go declarations the host-side engine uses, so the two targets
// cannot drift apart. Kept as GLSL 300 es, the dialect of the original
// renderer.
func FragmentLib() string {
	return fmt.Sprintf(glslTemplate,
		glslFloat(QuarticR4), glslFloat(QuadY), glslFloat(CubicY), glslFloat(RadSq),
		glslFloat(Sqrt3), glslFloat(OuterRSq), glslFloat(HeightMid), glslFloat(HeightDiv),
		InnerOffset, Worlds,
	)
}

// glslFloat formats a float literal so GLSL ES parses it as a float even
// when the value is integral (no implicit int→float conversion there).
func glslFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// %[n]v placeholders: 1 QuarticR4, 2 QuadY, 3 CubicY, 4 RadSq,
// 5 Sqrt3, 6 OuterRSq, 7 HeightMid, 8 HeightDiv, 9 InnerOffset, 10 Worlds.
const glslTemplate = `// generated by knotsim; do not edit by hand

const float KNOT_QUARTIC_R4 = %[1]v;
const float KNOT_QUAD_Y = %[2]v;
const float KNOT_CUBIC_Y = %[3]v;
const float KNOT_RAD_SQ = %[4]v;
const float KNOT_SQRT_3 = %[5]v;
const float KNOT_OUTER_R_SQ = %[6]v;
const float KNOT_HEIGHT_MID = %[7]v;
const float KNOT_HEIGHT_DIV = %[8]v;
const int KNOT_INNER_OFFSET = %[9]v;
const int KNOT_WORLDS = %[10]v;

bool solve_quadratic(float b, float c, out vec2 roots) {
    float disc = b * b - 4.0 * c;
    if (disc < 0.0) {
        return false;
    }
    float x1 = -(b + sign(b) * sqrt(disc)) / 2.0;
    float x2 = c / x1;
    roots = vec2(min(x1, x2), max(x1, x2));
    return true;
}

float solve_cubic(float a1, float a2, float a3) {
    a1 /= 3.0;
    float q = a1 * a1 - a2 / 3.0;
    float r = a1 * a1 * a1 + (a3 - a1 * a2) / 2.0;

    if (q * q * q >= r * r) {
        float theta = acos(r / sqrt(q * q * q));
        float x1 = -2.0 * sqrt(q) * cos(theta / 3.0) - a1;
        float x2 = -2.0 * sqrt(q) * cos((theta + 2.0 * 3.14159265) / 3.0) - a1;
        float x3 = -2.0 * sqrt(q) * cos((theta - 2.0 * 3.14159265) / 3.0) - a1;
        return max(x1, max(x2, x3));
    }
    float tmp = pow(sqrt(r * r - q * q * q) + abs(r), 1.0 / 3.0);
    return -sign(r) * (tmp + q / tmp) - a1;
}

int solve_quartic(float a, float b, float c, float d, out vec4 roots) {
    float alpha = a / 2.0;
    float tmp1 = b - alpha * alpha;
    float tmp2 = alpha * tmp1 - c;

    float t = sqrt(solve_cubic(
        2.0 * tmp1 - alpha * alpha,
        tmp1 * tmp1 - 2.0 * alpha * tmp2 - 4.0 * d,
        -tmp2 * tmp2));

    float p = alpha + t;
    float r = alpha - t;
    float q_plus_s = b - p * r;
    float q_minus_s = (alpha * q_plus_s - c) / t;
    float q = (q_plus_s + q_minus_s) / 2.0;
    float s = (q_plus_s - q_minus_s) / 2.0;

    vec2 roots0;
    vec2 roots1;
    bool ok0 = solve_quadratic(p, q, roots0);
    bool ok1 = solve_quadratic(r, s, roots1);

    if (ok0 && ok1) {
        float x1 = max(roots0.x, roots1.x);
        float x2 = min(roots0.y, roots1.y);
        roots = vec4(min(roots0.x, roots1.x), min(x1, x2), max(x1, x2), max(roots0.y, roots1.y));
        return 4;
    }
    if (ok0) {
        roots = vec4(roots0, 0.0, 0.0);
        return 2;
    }
    if (ok1) {
        roots = vec4(roots1, 0.0, 0.0);
        return 2;
    }
    return 0;
}

float outline_eval(vec2 p) {
    float rr = dot(p, p);
    return KNOT_QUARTIC_R4 * rr * rr - KNOT_QUAD_Y * rr * p.y
        + KNOT_CUBIC_Y * p.y * p.y * p.y - KNOT_RAD_SQ * rr + KNOT_RAD_SQ;
}

float surface_z(vec2 p) {
    float rr = dot(p, p);
    bool t1 = p.x > 0.0;
    bool t2 = p.x < p.y * KNOT_SQRT_3;
    bool t3 = p.x < -p.y * KNOT_SQRT_3;
    bool t4 = rr > KNOT_OUTER_R_SQ;

    float h = rr - KNOT_HEIGHT_MID;
    float z = sqrt(max(0.0, 1.0 - h * h / KNOT_HEIGHT_DIV));
    return (t1 ^^ t2 ^^ t3 ^^ t4) ? -z : z;
}

int arc_label(vec2 p) {
    float rr = dot(p, p);
    bool t1 = p.x > 0.0;
    bool t2 = p.x < p.y * KNOT_SQRT_3;
    bool t3 = p.x < -p.y * KNOT_SQRT_3;
    bool t4 = rr > KNOT_OUTER_R_SQ;

    int arc = t1 ? (t3 ? 3 : 5) : (t2 ? 1 : 3);
    return arc + (t4 ? 0 : KNOT_INNER_OFFSET);
}

// travel_world walks a segment and folds registered crossings into the
// world index, exactly as the host engine does.
int travel_world(int world, vec3 start, vec3 end) {
    vec2 v = end.xy - start.xy;
    float t_max = length(v);
    v /= t_max;

    vec2 x = vec2(start.x, v.x);
    vec2 y = vec2(start.y, v.y);

    vec3 rr = vec3(
        x[0] * x[0] + y[0] * y[0],
        2.0 * x[0] * x[1] + 2.0 * y[0] * y[1],
        x[1] * x[1] + y[1] * y[1]);

    float poly[5];
    poly[0] = KNOT_QUARTIC_R4 * (rr[0] * rr[0]) - KNOT_QUAD_Y * (rr[0] * y[0]) + KNOT_CUBIC_Y * y[0] * y[0] * y[0] - KNOT_RAD_SQ * rr[0] + KNOT_RAD_SQ;
    poly[1] = KNOT_QUARTIC_R4 * (2.0 * rr[0] * rr[1]) - KNOT_QUAD_Y * (rr[1] * y[0] + rr[0] * y[1]) + 3.0 * KNOT_CUBIC_Y * y[0] * y[0] * y[1] - KNOT_RAD_SQ * rr[1];
    poly[2] = KNOT_QUARTIC_R4 * (2.0 * rr[0] * rr[2] + rr[1] * rr[1]) - KNOT_QUAD_Y * (rr[2] * y[0] + rr[1] * y[1]) + 3.0 * KNOT_CUBIC_Y * y[0] * y[1] * y[1] - KNOT_RAD_SQ * rr[2];
    poly[3] = KNOT_QUARTIC_R4 * (2.0 * rr[1] * rr[2]) - KNOT_QUAD_Y * (rr[2] * y[1]) + KNOT_CUBIC_Y * y[1] * y[1] * y[1];
    poly[4] = KNOT_QUARTIC_R4 * (rr[2] * rr[2]);

    vec4 roots;
    int n = solve_quartic(poly[3] / poly[4], poly[2] / poly[4], poly[1] / poly[4], poly[0] / poly[4], roots);

    for (int i = 0; i < 4; i++) {
        if (i >= n) {
            break;
        }
        float root = roots[i];
        if (0.0 < root && root < t_max) {
            vec3 pos = mix(start, end, root / t_max);
            if (pos.z < surface_z(pos.xy)) {
                world = arc_label(pos.xy) - world;
            }
        }
    }

    world = world %% KNOT_WORLDS;
    if (world < 0) {
        world += KNOT_WORLDS;
    }
    return world;
}
`
