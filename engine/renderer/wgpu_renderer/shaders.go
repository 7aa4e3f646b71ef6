package wgpu_renderer

// vertexStage is shared by every built-in pipeline. Positions are already in clip space;
// scene transforms are bound by the draw loop, which lives outside this module.
const vertexStage = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) tex_coords: vec2<f32>,
    @location(2) normal: vec3<f32>,
    @location(3) tangent: vec3<f32>,
    @location(4) bitangent: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) tex_coords: vec2<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) tangent: vec3<f32>,
    @location(3) bitangent: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = vec4<f32>(in.position, 1.0);
    out.tex_coords = in.tex_coords;
    out.normal = in.normal;
    out.tangent = in.tangent;
    out.bitangent = in.bitangent;
    return out;
}

const LIGHT_DIR: vec3<f32> = vec3<f32>(0.3, 1.0, 0.5);
`

const colorShader = vertexStage + `
struct ColorMaterial {
    ambient: vec3<f32>,
    specular: f32,
    diffuse: vec3<f32>,
};

@group(0) @binding(0)
var<uniform> material: ColorMaterial;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let n = normalize(in.normal);
    let l = normalize(LIGHT_DIR);
    let diffuse = max(dot(n, l), 0.0) * material.diffuse;
    let half_dir = normalize(l + vec3<f32>(0.0, 0.0, 1.0));
    let specular = pow(max(dot(n, half_dir), 0.0), 32.0) * material.specular;
    return vec4<f32>(material.ambient + diffuse + vec3<f32>(specular), 1.0);
}
`

const textureShader = vertexStage + `
@group(0) @binding(0)
var t_diffuse: texture_2d<f32>;
@group(0) @binding(1)
var s_diffuse: sampler;
@group(0) @binding(2)
var t_normal: texture_2d<f32>;
@group(0) @binding(3)
var s_normal: sampler;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let albedo = textureSample(t_diffuse, s_diffuse, in.tex_coords);
    let tangent_normal = textureSample(t_normal, s_normal, in.tex_coords).xyz * 2.0 - 1.0;
    let tbn = mat3x3<f32>(normalize(in.tangent), normalize(in.bitangent), normalize(in.normal));
    let n = normalize(tbn * tangent_normal);
    let strength = max(dot(n, normalize(LIGHT_DIR)), 0.0);
    return vec4<f32>(albedo.rgb * (0.1 + strength), albedo.a);
}
`

const lightShader = vertexStage + `
@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`
